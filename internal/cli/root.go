package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/cache"
	"github.com/rohmanhakim/liondine-api/internal/config"
	"github.com/rohmanhakim/liondine-api/internal/pipeline"
	"github.com/rohmanhakim/liondine-api/internal/scraper"
	"github.com/rohmanhakim/liondine-api/internal/server"
	"github.com/rohmanhakim/liondine-api/internal/structurer"
)

const apiKeyEnv = "OPENAI_API_KEY"

var (
	cfgFile          string
	listenAddr       string
	menuBaseURL      string
	userAgent        string
	scrapeTimeout    time.Duration
	structureTimeout time.Duration
	minContentLength int
	openAIModel      string
	cacheLifetime    time.Duration
	sweepInterval    time.Duration
	cacheDir         string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "liondine-api",
	Short: "Dining-hall menu API with day-scoped caching.",
	Long: `liondine-api serves structured dining-hall menus. Each request fetches the
menu page for a meal period, extracts the menu with a text-understanding
service, and caches the structured result per meal per calendar day so
repeated requests never redo upstream work.

Endpoints: /api/menu, /api/cache, /api/health, /test.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		return runServer(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen-addr", "", "address the HTTP server binds to (e.g., :8080)")
	rootCmd.PersistentFlags().StringVar(&menuBaseURL, "menu-base-url", "", "root URL of the menu site")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for upstream requests")
	rootCmd.PersistentFlags().DurationVar(&scrapeTimeout, "scrape-timeout", 0, "timeout for menu page fetches")
	rootCmd.PersistentFlags().DurationVar(&structureTimeout, "structure-timeout", 0, "timeout for structuring calls")
	rootCmd.PersistentFlags().IntVar(&minContentLength, "min-content-length", 0, "minimum extracted text length accepted before structuring")
	rootCmd.PersistentFlags().StringVar(&openAIModel, "model", "", "model used for menu extraction")
	rootCmd.PersistentFlags().DurationVar(&cacheLifetime, "cache-lifetime", 0, "how long cached menus stay servable")
	rootCmd.PersistentFlags().DurationVar(&sweepInterval, "sweep-interval", 0, "how often expired cache entries are swept")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent cache (empty keeps the cache in memory)")
}

// InitConfigWithError builds the effective config from the config file or
// CLI flags, then applies the environment-only API key on top.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return applyAPIKey(cfg)
	}

	configBuilder := config.WithDefault()

	if listenAddr != "" {
		configBuilder = configBuilder.WithListenAddr(listenAddr)
	}
	if menuBaseURL != "" {
		configBuilder = configBuilder.WithMenuBaseURL(menuBaseURL)
	}
	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}
	if scrapeTimeout > 0 {
		configBuilder = configBuilder.WithScrapeTimeout(scrapeTimeout)
	}
	if structureTimeout > 0 {
		configBuilder = configBuilder.WithStructureTimeout(structureTimeout)
	}
	if minContentLength > 0 {
		configBuilder = configBuilder.WithMinContentLength(minContentLength)
	}
	if openAIModel != "" {
		configBuilder = configBuilder.WithOpenAIModel(openAIModel)
	}
	if cacheLifetime > 0 {
		configBuilder = configBuilder.WithCacheLifetime(cacheLifetime)
	}
	if sweepInterval > 0 {
		configBuilder = configBuilder.WithSweepInterval(sweepInterval)
	}
	if cacheDir != "" {
		configBuilder = configBuilder.WithCacheDir(cacheDir)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return applyAPIKey(cfg)
}

func applyAPIKey(cfg config.Config) (config.Config, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return config.Config{}, fmt.Errorf("%s environment variable is not set", apiKeyEnv)
	}
	built, err := cfg.WithOpenAIAPIKey(apiKey).Build()
	if err != nil {
		return config.Config{}, err
	}
	return built, nil
}

func runServer(cfg config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	store, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	sweeper := cache.NewSweeper(store, cfg.SweepInterval(), logger.Named("sweeper"))
	sweeper.Start()
	defer sweeper.Stop()

	pageScraper := scraper.NewHTMLScraper(cfg.MenuBaseURL(), cfg.UserAgent(), cfg.ScrapeTimeout(), logger.Named("scraper"))
	menuStructurer := structurer.NewOpenAIStructurer(cfg.OpenAIAPIKey(), cfg.OpenAIModel(), cfg.StructureTimeout(), logger.Named("structurer"))
	service := pipeline.NewService(store, pageScraper, menuStructurer, cfg.MinContentLength(), logger.Named("pipeline"))

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: server.New(service, store, logger.Named("server")).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.ListenAddr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func newStore(cfg config.Config, logger *zap.Logger) (cache.Store, error) {
	if cfg.CacheDir() == "" {
		return cache.NewMemoryStore(cfg.CacheLifetime(), logger.Named("cache")), nil
	}
	store, err := cache.NewFileStore(cfg.CacheDir(), cfg.CacheLifetime(), logger.Named("cache"))
	if err != nil {
		return nil, err
	}
	logger.Info("using persistent cache", zap.String("dir", cfg.CacheDir()))
	return store, nil
}

// ResetFlags restores flag state between test runs.
func ResetFlags() {
	cfgFile = ""
	listenAddr = ""
	menuBaseURL = ""
	userAgent = ""
	scrapeTimeout = 0
	structureTimeout = 0
	minContentLength = 0
	openAIModel = ""
	cacheLifetime = 0
	sweepInterval = 0
	cacheDir = ""
}
