package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/build"
)

type Config struct {
	//===============
	// Server
	//===============
	// Address the HTTP server binds to
	listenAddr string
	// Maximum time the server waits for in-flight requests during shutdown
	shutdownTimeout time.Duration

	//===============
	// Upstream
	//===============
	// Root of the menu site; meal pages live at {menuBaseURL}/{meal}
	menuBaseURL string
	// User agent sent with upstream requests
	userAgent string
	// Maximum time of a single menu page fetch
	scrapeTimeout time.Duration
	// Minimum extracted-text length accepted before structuring;
	// shorter pages are treated as partial or blocked responses
	minContentLength int

	//===============
	// Structuring
	//===============
	// API key for the text-understanding service. Never read from the
	// config file; supplied via the OPENAI_API_KEY environment variable.
	openAIAPIKey string
	// Model used for extraction
	openAIModel string
	// Maximum time of a single structuring call
	structureTimeout time.Duration

	//===============
	// Cache
	//===============
	// How long a cached record stays servable
	cacheLifetime time.Duration
	// How often the background sweep removes expired entries
	sweepInterval time.Duration
	// Directory for the persistent cache variant. Empty keeps the cache
	// in memory only.
	cacheDir string
}

type configDTO struct {
	ListenAddr       string        `json:"listenAddr,omitempty"`
	ShutdownTimeout  time.Duration `json:"shutdownTimeout,omitempty"`
	MenuBaseURL      string        `json:"menuBaseUrl,omitempty"`
	UserAgent        string        `json:"userAgent,omitempty"`
	ScrapeTimeout    time.Duration `json:"scrapeTimeout,omitempty"`
	MinContentLength int           `json:"minContentLength,omitempty"`
	OpenAIModel      string        `json:"openAiModel,omitempty"`
	StructureTimeout time.Duration `json:"structureTimeout,omitempty"`
	CacheLifetime    time.Duration `json:"cacheLifetime,omitempty"`
	SweepInterval    time.Duration `json:"sweepInterval,omitempty"`
	CacheDir         string        `json:"cacheDir,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	if dto.ListenAddr != "" {
		cfg.listenAddr = dto.ListenAddr
	}
	if dto.ShutdownTimeout != 0 {
		cfg.shutdownTimeout = dto.ShutdownTimeout
	}
	if dto.MenuBaseURL != "" {
		cfg.menuBaseURL = dto.MenuBaseURL
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.ScrapeTimeout != 0 {
		cfg.scrapeTimeout = dto.ScrapeTimeout
	}
	if dto.MinContentLength != 0 {
		cfg.minContentLength = dto.MinContentLength
	}
	if dto.OpenAIModel != "" {
		cfg.openAIModel = dto.OpenAIModel
	}
	if dto.StructureTimeout != 0 {
		cfg.structureTimeout = dto.StructureTimeout
	}
	if dto.CacheLifetime != 0 {
		cfg.cacheLifetime = dto.CacheLifetime
	}
	if dto.SweepInterval != 0 {
		cfg.sweepInterval = dto.SweepInterval
	}
	if dto.CacheDir != "" {
		cfg.cacheDir = dto.CacheDir
	}

	return cfg, nil
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
// The API key is intentionally absent here; it comes from the environment.
func WithDefault() *Config {
	defaultConfig := Config{
		listenAddr:       ":8080",
		shutdownTimeout:  5 * time.Second,
		menuBaseURL:      "https://liondine.com",
		userAgent:        build.UserAgent(),
		scrapeTimeout:    15 * time.Second,
		minContentLength: 100,
		openAIModel:      "gpt-4o",
		structureTimeout: 60 * time.Second,
		cacheLifetime:    1440 * time.Minute,
		sweepInterval:    time.Hour,
		cacheDir:         "",
	}
	return &defaultConfig
}

func (c *Config) WithListenAddr(addr string) *Config {
	c.listenAddr = addr
	return c
}

func (c *Config) WithShutdownTimeout(timeout time.Duration) *Config {
	c.shutdownTimeout = timeout
	return c
}

func (c *Config) WithMenuBaseURL(baseURL string) *Config {
	c.menuBaseURL = baseURL
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithScrapeTimeout(timeout time.Duration) *Config {
	c.scrapeTimeout = timeout
	return c
}

func (c *Config) WithMinContentLength(length int) *Config {
	c.minContentLength = length
	return c
}

func (c *Config) WithOpenAIAPIKey(key string) *Config {
	c.openAIAPIKey = key
	return c
}

func (c *Config) WithOpenAIModel(model string) *Config {
	c.openAIModel = model
	return c
}

func (c *Config) WithStructureTimeout(timeout time.Duration) *Config {
	c.structureTimeout = timeout
	return c
}

func (c *Config) WithCacheLifetime(lifetime time.Duration) *Config {
	c.cacheLifetime = lifetime
	return c
}

func (c *Config) WithSweepInterval(interval time.Duration) *Config {
	c.sweepInterval = interval
	return c
}

func (c *Config) WithCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

func (c *Config) Build() (Config, error) {
	if c.listenAddr == "" {
		return Config{}, fmt.Errorf("%w: listenAddr cannot be empty", ErrInvalidConfig)
	}
	if c.menuBaseURL == "" {
		return Config{}, fmt.Errorf("%w: menuBaseUrl cannot be empty", ErrInvalidConfig)
	}
	if c.cacheLifetime < 0 {
		return Config{}, fmt.Errorf("%w: cacheLifetime cannot be negative", ErrInvalidConfig)
	}
	if c.sweepInterval < 0 {
		return Config{}, fmt.Errorf("%w: sweepInterval cannot be negative", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) ListenAddr() string {
	return c.listenAddr
}

func (c Config) ShutdownTimeout() time.Duration {
	return c.shutdownTimeout
}

func (c Config) MenuBaseURL() string {
	return c.menuBaseURL
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) ScrapeTimeout() time.Duration {
	return c.scrapeTimeout
}

func (c Config) MinContentLength() int {
	return c.minContentLength
}

func (c Config) OpenAIAPIKey() string {
	return c.openAIAPIKey
}

func (c Config) OpenAIModel() string {
	return c.openAIModel
}

func (c Config) StructureTimeout() time.Duration {
	return c.structureTimeout
}

func (c Config) CacheLifetime() time.Duration {
	return c.cacheLifetime
}

func (c Config) SweepInterval() time.Duration {
	return c.sweepInterval
}

func (c Config) CacheDir() string {
	return c.cacheDir
}
