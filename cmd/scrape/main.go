package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"dwellscan/listingworker/config"
	"dwellscan/listingworker/internal/browser"
	"dwellscan/listingworker/logger"
	"dwellscan/listingworker/services/cache"
	"dwellscan/listingworker/services/events"
	"dwellscan/listingworker/services/scraper"

	"github.com/joho/godotenv"
)

// One-shot scrape: extract a single listing page and print the record as JSON
func main() {
	address := flag.String("address", "", "listing page URL to scrape")
	requestedBy := flag.String("requested-by", "cli", "requester recorded with the result")
	timeout := flag.Duration("timeout", 90*time.Second, "overall scrape timeout")
	headless := flag.Bool("headless", true, "run the browser headless")
	flag.Parse()

	if *address == "" {
		fmt.Fprintln(os.Stderr, "usage: scrape -address <url>")
		os.Exit(2)
	}

	godotenv.Load()
	logger.Init()
	cfg := config.LoadConfig()

	mgr := browser.NewManager(browser.Options{
		Headless:        *headless,
		UserAgent:       cfg.UserAgent,
		NavigateTimeout: cfg.NavigateTimeout,
		ElementTimeout:  cfg.ElementTimeout,
	}, cfg.LaunchesPerMin)

	svc := scraper.New(cache.NewMemoryStore(), mgr, events.Noop{})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	record, err := svc.Scrape(ctx, *address, *requestedBy)
	if err != nil {
		logger.Default.Fatal().Err(err).Str("address", *address).Msg("Scrape failed")
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		logger.Default.Fatal().Err(err).Msg("Failed to encode record")
	}
	fmt.Println(string(out))
}
