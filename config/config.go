package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	apperr "dwellscan/listingworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// HTTP server configuration
	ListenAddr         string
	RateLimitPerMinute int

	// Cache configuration
	CacheBackend string
	MemcacheAddr string
	RedisAddr    string
	RedisDB      int
	PostgresDSN  string

	// Event stream configuration
	EventsEnabled        bool
	EventStream          string
	EventStreamMaxLength int

	// Browser configuration
	ChromeHeadless  bool
	UserAgent       string
	ScrapeTimeout   time.Duration
	NavigateTimeout time.Duration
	ElementTimeout  time.Duration
	LaunchesPerMin  int

	// Document service configuration
	ConverterURL string

	// Warmup configuration
	WarmupAddresses   []string
	WarmupConcurrency int

	// Environment
	Environment string
}

// Cache backends selectable via CACHE_BACKEND
const (
	CacheBackendMemory   = "memory"
	CacheBackendMemcache = "memcache"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	return Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),

		CacheBackend: getEnv("CACHE_BACKEND", CacheBackendMemcache),
		MemcacheAddr: getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),

		EventsEnabled:        getEnvBool("EVENTS_ENABLED", false),
		EventStream:          getEnv("EVENT_STREAM", "listings:extracted"),
		EventStreamMaxLength: getEnvInt("EVENT_STREAM_MAX_LENGTH", 1000),

		ChromeHeadless:  getEnvBool("CHROME_HEADLESS", true),
		UserAgent:       getEnv("SCRAPER_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		ScrapeTimeout:   time.Duration(getEnvInt("SCRAPE_TIMEOUT_SECONDS", 90)) * time.Second,
		NavigateTimeout: time.Duration(getEnvInt("NAVIGATE_TIMEOUT_SECONDS", 15)) * time.Second,
		ElementTimeout:  time.Duration(getEnvInt("ELEMENT_TIMEOUT_SECONDS", 5)) * time.Second,
		LaunchesPerMin:  getEnvInt("BROWSER_LAUNCHES_PER_MINUTE", 6),

		ConverterURL: getEnv("CONVERTER_URL", ""),

		WarmupAddresses:   getEnvList("WARMUP_ADDRESSES"),
		WarmupConcurrency: getEnvInt("WARMUP_CONCURRENCY", 2),

		Environment: getEnv("LISTING_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendMemcache, CacheBackendRedis, CacheBackendPostgres:
	default:
		return apperr.NewConfiguration("unknown cache backend: "+c.CacheBackend, nil)
	}
	if c.CacheBackend == CacheBackendPostgres && c.PostgresDSN == "" {
		return apperr.NewConfiguration("POSTGRES_DSN is required for the postgres cache backend", nil)
	}
	if c.RateLimitPerMinute <= 0 {
		return apperr.NewConfiguration("RATE_LIMIT_PER_MINUTE must be positive", nil)
	}
	if c.LaunchesPerMin <= 0 {
		return apperr.NewConfiguration("BROWSER_LAUNCHES_PER_MINUTE must be positive", nil)
	}
	if c.ScrapeTimeout <= 0 || c.NavigateTimeout <= 0 || c.ElementTimeout <= 0 {
		return apperr.NewConfiguration("timeouts must be positive", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvList retrieves a comma-separated environment variable as a slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
