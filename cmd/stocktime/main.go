package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HouseYeung/Stock-Time/internal/api"
	"github.com/HouseYeung/Stock-Time/internal/archive"
	"github.com/HouseYeung/Stock-Time/internal/config"
	"github.com/HouseYeung/Stock-Time/internal/database"
	"github.com/HouseYeung/Stock-Time/internal/feed"
	"github.com/HouseYeung/Stock-Time/internal/holiday"
	"github.com/HouseYeung/Stock-Time/internal/model"
	"github.com/HouseYeung/Stock-Time/internal/server"
	"github.com/HouseYeung/Stock-Time/internal/session"
	"github.com/HouseYeung/Stock-Time/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/stocktime.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting stocktime",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"addr", cfg.Server.Addr,
		"exchange", cfg.Market.Exchange,
		"archive", cfg.Archive.Enabled,
	)

	marketLoc, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		logger.Error("failed to load market timezone", "error", err)
		os.Exit(1)
	}
	displayLoc, err := time.LoadLocation(cfg.Market.DisplayTimezone)
	if err != nil {
		logger.Error("failed to load display timezone", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.Finnhub.RestURL,
		cfg.Finnhub.Token,
		api.WithLogger(logger),
		api.WithTimeout(cfg.Finnhub.Timeout),
		api.WithRetries(cfg.Finnhub.MaxRetries, time.Second),
	)

	// Holiday calendar with periodic refresh
	calendar := holiday.NewCalendar(holiday.SourceFunc(func(ctx context.Context) ([]model.HolidayEvent, error) {
		return apiClient.GetMarketHolidays(ctx, cfg.Market.Exchange)
	}), logger)

	refresher := holiday.NewRefresher(holiday.RefresherConfig{
		Interval: cfg.Holidays.RefreshInterval,
		Timeout:  cfg.Holidays.FetchTimeout,
	}, calendar, logger)

	if err := refresher.Start(ctx); err != nil {
		logger.Error("failed to start holiday refresher", "error", err)
		os.Exit(1)
	}

	// Optional trade tick archive
	var sink chan model.TradeRecord
	var writer *archive.Writer
	if cfg.Archive.Enabled {
		logger.Info("connecting to archive database",
			"host", cfg.Archive.Database.Host,
			"port", cfg.Archive.Database.Port,
			"database", cfg.Archive.Database.Name,
		)

		pool, err := database.Connect(ctx, cfg.Archive.Database)
		if err != nil {
			logger.Error("failed to connect to archive database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		sink = make(chan model.TradeRecord, cfg.Archive.BufferSize)
		writer = archive.NewWriter(archive.WriterConfig{
			BatchSize:     cfg.Archive.BatchSize,
			FlushInterval: cfg.Archive.FlushInterval,
		}, sink, pool, logger)

		if err := writer.Start(ctx); err != nil {
			logger.Error("failed to start archive writer", "error", err)
			os.Exit(1)
		}
	}

	// Trade feed
	cache := feed.NewCache()
	ingestor := feed.NewIngestor(feed.IngestorConfig{
		WSURL:              cfg.Finnhub.WSURL,
		Token:              cfg.Finnhub.Token,
		ReconnectBaseDelay: cfg.Feed.ReconnectBaseDelay,
		ReconnectMaxDelay:  cfg.Feed.ReconnectMaxDelay,
		PingTimeout:        cfg.Feed.PingTimeout,
		WriteTimeout:       cfg.Feed.WriteTimeout,
		BufferSize:         cfg.Feed.BufferSize,
	}, cache, sink, logger)

	if err := ingestor.Start(ctx); err != nil {
		logger.Error("failed to start feed ingestor", "error", err)
		os.Exit(1)
	}

	// HTTP surface
	srv := server.New(server.Config{
		Addr:      cfg.Server.Addr,
		StaticDir: cfg.Server.StaticDir,
		Timeout:   cfg.Server.Timeout,
	}, session.NewClock(marketLoc), displayLoc, calendar, cache, apiClient, ingestor, logger)

	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start http server", "error", err)
		os.Exit(1)
	}

	logger.Info("stocktime running", "addr", cfg.Server.Addr)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Warn("http server shutdown failed", "error", err)
	}
	if err := ingestor.Stop(shutdownCtx); err != nil {
		logger.Warn("feed ingestor shutdown failed", "error", err)
	}
	if err := refresher.Stop(shutdownCtx); err != nil {
		logger.Warn("holiday refresher shutdown failed", "error", err)
	}
	if writer != nil {
		if err := writer.Stop(shutdownCtx); err != nil {
			logger.Warn("archive writer shutdown failed", "error", err)
		}
	}

	logger.Info("stocktime stopped")
}
