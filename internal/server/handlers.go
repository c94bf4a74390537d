package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rohmanhakim/liondine-api/internal/build"
	"github.com/rohmanhakim/liondine-api/internal/pipeline"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

func (s *Server) getMenu(c *gin.Context) {
	meal := c.Query("meal")
	if meal == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: meal"})
		return
	}
	bypassCache := c.Query("refresh") == "true"

	result, err := s.acquirer.Acquire(c.Request.Context(), meal, bypassCache)
	if err != nil {
		status, kind := statusForError(err)
		c.JSON(status, gin.H{"error": kind, "details": err.Error()})
		return
	}

	if result.FromCache() {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("Cache-Control", "public, s-maxage=3600")
	c.JSON(http.StatusOK, result.Data())
}

// statusForError maps the acquire taxonomy onto HTTP. Invalid input is the
// caller's to fix (400); upstream and data-quality failures are retryable
// from the client's point of view (502); anything unrecognized is a 500.
func statusForError(err failure.ClassifiedError) (int, string) {
	var acquireErr *pipeline.AcquireError
	if !errors.As(err, &acquireErr) {
		return http.StatusInternalServerError, "internal error"
	}
	switch acquireErr.Cause {
	case pipeline.ErrCauseInvalidMealType:
		return http.StatusBadRequest, string(acquireErr.Cause)
	case pipeline.ErrCauseUpstreamFetchFailed,
		pipeline.ErrCauseInsufficientContent,
		pipeline.ErrCauseStructuringFailed,
		pipeline.ErrCauseSchemaInvalid:
		return http.StatusBadGateway, string(acquireErr.Cause)
	default:
		return http.StatusInternalServerError, string(acquireErr.Cause)
	}
}

func (s *Server) getCacheStats(c *gin.Context) {
	stats := s.store.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache": gin.H{
			"entries":   stats.Entries,
			"keys":      stats.Keys,
			"sizeBytes": stats.SizeBytes,
			"sizeKB":    fmt.Sprintf("%.2f", float64(stats.SizeBytes)/1024),
		},
	})
}

func (s *Server) clearCache(c *gin.Context) {
	s.store.Clear()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Cache cleared successfully",
	})
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Seconds(),
		"service":   "Lion Dine Menu API",
		"version":   build.FullVersion(),
	})
}

func (s *Server) getTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(testPageHTML))
}
