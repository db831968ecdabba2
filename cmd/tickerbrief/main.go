package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dhruvkm/tickerbrief/internal/aggregator"
	"github.com/dhruvkm/tickerbrief/internal/config"
	"github.com/dhruvkm/tickerbrief/internal/crawler"
	"github.com/dhruvkm/tickerbrief/internal/domain"
	"github.com/dhruvkm/tickerbrief/internal/logger"
	"github.com/dhruvkm/tickerbrief/internal/report"
	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
	"github.com/dhruvkm/tickerbrief/pkg/providers"
	"github.com/dhruvkm/tickerbrief/pkg/publishers"
)

func main() {
	var (
		ticker     = flag.String("ticker", "", "stock ticker symbol (required)")
		source     = flag.String("source", "", "fetch from a single source instead of aggregating")
		limit      = flag.Int("limit", 0, "limit per source, 0 uses the configured default")
		configPath = flag.String("config", "", "path to config file")
		publish    = flag.Bool("publish", false, "deliver the result to the configured publishers")
	)
	flag.Parse()

	if *ticker == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	perSource := cfg.LimitPerSource
	if *limit > 0 {
		perSource = *limit
	}

	client := httpclient.NewRestyClient(cfg.RequestTimeout())
	agg := aggregator.New(buildRegistry(cfg, client), log)
	ctx := context.Background()

	if *source != "" {
		articles, err := agg.GetNewsBySource(ctx, *ticker, *source, perSource)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch: %v\n", err)
			os.Exit(1)
		}
		heading := fmt.Sprintf("Recent News for %s (%s):", *ticker, *source)
		fmt.Print(report.Articles(heading, articles))
		return
	}

	result, err := agg.GetUnifiedNews(ctx, *ticker, perSource)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aggregate: %v\n", err)
		os.Exit(1)
	}

	if cfg.Enrich.Enabled {
		scraper := crawler.NewScraper(client, log, time.Duration(cfg.Enrich.RequestDelayMS)*time.Millisecond)
		result.Articles = scraper.Enrich(ctx, result.Articles)
	}

	fmt.Print(report.Unified(result))

	if *publish && cfg.PublishersFile != "" {
		if err := publishResult(ctx, cfg.PublishersFile, result, log); err != nil {
			fmt.Fprintf(os.Stderr, "publish: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildRegistry wires up the enabled sources with their configured base URLs.
func buildRegistry(cfg config.Config, client httpclient.Client) *providers.Registry {
	var sources []providers.Source
	if cfg.SourceEnabled(providers.SourceYahoo) {
		sources = append(sources, providers.NewYahooSource(client, cfg.SourceBaseURL(providers.SourceYahoo)))
	}
	if cfg.SourceEnabled(providers.SourceTipRanks) {
		sources = append(sources, providers.NewTipRanksSource(client, cfg.SourceBaseURL(providers.SourceTipRanks)))
	}
	return providers.NewRegistry(sources...)
}

// publishResult delivers the aggregation result to every enabled publisher
// from the publishers config file.
func publishResult(ctx context.Context, path string, result *domain.UnifiedResult, log logger.Logger) error {
	reg, err := publishers.LoadConfig(path)
	if err != nil {
		return err
	}

	pubs, err := publishers.DefaultBuilders().BuildAll(ctx, reg.Enabled(), log)
	if err != nil {
		return err
	}

	evt := publishers.NewEvent(result)
	for _, pub := range pubs {
		if err := pub.Publish(ctx, evt); err != nil {
			return fmt.Errorf("publisher %s: %w", pub.ID(), err)
		}
	}
	return nil
}
