package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"sciencevideodb/internal/batch"
	"sciencevideodb/internal/cache"
	"sciencevideodb/internal/config"
	"sciencevideodb/internal/domain"
	"sciencevideodb/internal/publisher"
	"sciencevideodb/internal/service"
	"sciencevideodb/internal/source/youtube"
	"sciencevideodb/internal/storage/postgres"
	"sciencevideodb/migrations"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to config file")
	all := flag.Bool("all", false, "ingest every channel that is due for an update")
	channelID := flag.String("channel", "", "ingest a single channel by platform channel id")
	migrate := flag.Bool("migrate", false, "apply database migrations before ingesting")
	flag.Usage = usage
	flag.Parse()

	if !*all && *channelID == "" {
		usage()
		return 1
	}

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer db.Close()
	logger.Info("connected to database")

	if *migrate || cfg.Database.AutoMigrate {
		if err := migrations.Run(db.DB); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			return 1
		}
		logger.Info("migrations applied")
	}

	ytCfg := youtube.Config{
		APIKey:            cfg.YouTube.APIKey,
		BaseURL:           cfg.YouTube.BaseURL,
		Timeout:           cfg.YouTube.Timeout,
		MinInterval:       cfg.YouTube.MinInterval,
		TranscriptBaseURL: cfg.Transcripts.BaseURL,
		TranscriptTimeout: cfg.Transcripts.Timeout,
	}

	if cfg.Redis.Addr != "" {
		uploads, err := cache.NewUploads(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			return 1
		}
		defer uploads.Close()
		ytCfg.Cache = uploads
	}

	ytClient, err := youtube.New(ytCfg, logger)
	if err != nil {
		logger.Error("failed to create youtube client", "error", err)
		return 1
	}

	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return 1
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	channelStore := postgres.NewChannelStore(db)

	syncService := service.NewChannelSyncService(
		ytClient,
		channelStore,
		postgres.NewVideoStore(db),
		postgres.NewTranscriptStore(db),
		pub,
		logger,
		service.Config{
			MaxVideosPerRun:    cfg.Sync.MaxVideosPerRun,
			TranscriptLanguage: cfg.Transcripts.Language,
		},
	)

	if *channelID != "" {
		status, err := syncService.SyncChannel(ctx, *channelID)
		if status != nil {
			printSummary(os.Stdout, &domain.BatchSummary{}, status)
		}
		if err != nil {
			logger.Error("channel ingestion failed", "channel_id", *channelID, "error", err)
			return 1
		}
		return 0
	}

	runner := batch.NewRunner(channelStore, syncService, logger)
	summary, err := runner.Run(ctx)
	if summary != nil {
		printSummary(os.Stdout, summary)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("batch ingestion failed", "error", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %[1]s --all               ingest all channels due for an update
  %[1]s --channel <id>      ingest a single channel

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

// printSummary writes one row per channel run followed by the batch totals.
// Extra runs are folded into summary first.
func printSummary(w io.Writer, summary *domain.BatchSummary, runs ...*domain.IngestionStatus) {
	for _, r := range runs {
		summary.Add(r)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tSTATE\tPROCESSED\tNEW\tUPDATED\tERRORS\tDURATION")
	for _, r := range summary.Runs {
		var elapsed time.Duration
		if r.CompletedAt != nil {
			elapsed = r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ChannelID, r.State, r.VideosProcessed, r.VideosNew, r.VideosUpdated, len(r.Errors), elapsed)
	}
	fmt.Fprintf(tw, "TOTAL\t%d/%d ok\t%d\t%d\t%d\t%d\t\n",
		summary.ChannelsCompleted, summary.ChannelsAttempted,
		summary.VideosProcessed, summary.VideosNew, summary.VideosUpdated, summary.Errors)
	_ = tw.Flush()
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
