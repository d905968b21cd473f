package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dwellscan/listingworker/api"
	"dwellscan/listingworker/config"
	"dwellscan/listingworker/helpers"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"
	"dwellscan/listingworker/services/cache"
	"dwellscan/listingworker/services/document"
	"dwellscan/listingworker/services/events"
	"dwellscan/listingworker/services/scraper"
	"dwellscan/listingworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("cache_backend", cfg.CacheBackend).
		Str("listen_addr", cfg.ListenAddr).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services
	services, err := initializeServices(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	// Warm the cache in the background when addresses are configured
	if len(cfg.WarmupAddresses) > 0 {
		w := worker.NewWorker(
			services.Scraper,
			services.Events,
			helpers.NewComponentLogger("worker"),
			cfg.WarmupAddresses,
			cfg.WarmupConcurrency,
		)
		go w.Run(ctx)

		log.Info().
			Int("addresses", len(cfg.WarmupAddresses)).
			Int("concurrency", cfg.WarmupConcurrency).
			Msg("Started cache warmup")
	}

	router := api.NewRouter(api.Deps{
		Scraper:            services.Scraper,
		Cache:              services.Cache,
		Generator:          services.Generator,
		Merger:             services.Merger,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ScrapeTimeout:      cfg.ScrapeTimeout,
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	// Start the HTTP server in a goroutine
	serverDone := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("Starting HTTP server")
		serverDone <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	case err := <-serverDone:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server exited with error")
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	cancel()

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.Store
	Events    events.Publisher
	Browser   *browser.Manager
	Scraper   *scraper.Service
	Generator *document.Generator
	Merger    *document.Merger
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Events != nil {
		s.Events.Close()
	}
	if s.Cache != nil {
		s.Cache.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize the cache store
	store, err := newCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	services.Cache = store

	logger.Info("Using %s cache backend", cfg.CacheBackend)

	// Initialize the event publisher
	if cfg.EventsEnabled {
		services.Events = events.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.EventStream,
			cfg.EventStreamMaxLength,
		)
		logger.Info("Publishing events to Redis at %s (stream: %s)", cfg.RedisAddr, cfg.EventStream)
	} else {
		services.Events = events.Noop{}
	}

	// Initialize the browser session manager
	services.Browser = browser.NewManager(browser.Options{
		Headless:        cfg.ChromeHeadless,
		UserAgent:       cfg.UserAgent,
		NavigateTimeout: cfg.NavigateTimeout,
		ElementTimeout:  cfg.ElementTimeout,
	}, cfg.LaunchesPerMin)

	services.Scraper = scraper.New(services.Cache, services.Browser, services.Events)

	// Document services are optional and depend on the converter
	if cfg.ConverterURL != "" {
		services.Generator = document.NewGenerator(cfg.ConverterURL)
		services.Merger = document.NewMerger(nil)
		logger.Info("Document generation via %s", cfg.ConverterURL)
	}

	return services, nil
}

// newCacheStore builds the configured cache backend
func newCacheStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		return cache.NewMemoryStore(), nil
	case config.CacheBackendMemcache:
		return cache.NewMemcacheStore(cfg.MemcacheAddr), nil
	case config.CacheBackendRedis:
		return cache.NewRedisStore(cfg.RedisAddr, cfg.RedisDB), nil
	case config.CacheBackendPostgres:
		store, err := cache.OpenPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, apperr.NewConfiguration("unknown cache backend: "+cfg.CacheBackend, nil)
	}
}
