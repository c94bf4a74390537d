package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/cache"
	"github.com/rohmanhakim/liondine-api/internal/pipeline"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

/*
Responsibilities

- Translate HTTP requests into pipeline and cache-store operations
- Map acquire error kinds onto HTTP statuses
- Expose the cache-administration and health surfaces

This layer holds no menu logic and no caching logic; it is a thin adapter
over the pipeline service and the store.
*/

// Acquirer is the single entry point the routing layer calls per user
// request. It is satisfied by *pipeline.Service and by test doubles.
type Acquirer interface {
	Acquire(ctx context.Context, meal string, bypassCache bool) (pipeline.AcquireResult, failure.ClassifiedError)
}

type Server struct {
	engine    *gin.Engine
	acquirer  Acquirer
	store     cache.Store
	logger    *zap.Logger
	startTime time.Time
}

func New(acquirer Acquirer, store cache.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:    engine,
		acquirer:  acquirer,
		store:     store,
		logger:    logger,
		startTime: time.Now(),
	}

	engine.Use(s.requestLogger())
	s.registerRoutes()
	return s
}

// Handler exposes the routing tree for http.Server and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/api/menu", s.getMenu)
	s.engine.GET("/api/cache", s.getCacheStats)
	s.engine.DELETE("/api/cache", s.clearCache)
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/test", s.getTestPage)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		s.logger.Info("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(startTime)))
	}
}
