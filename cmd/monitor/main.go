package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"coinsight/internal/analyze"
	"coinsight/internal/api/coingecko"
	"coinsight/internal/config"
	"coinsight/internal/database"
	"coinsight/internal/notifier"
	"coinsight/internal/regime"
	"coinsight/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	logger.Info().Msg("Starting market monitor")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel, logger)

	client := coingecko.NewClient(coingecko.ClientOptions{
		BaseURL:        cfg.APIBaseURL,
		APIKey:         cfg.APIKey,
		VsCurrency:     cfg.VsCurrency,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	analyzer := analyze.New(regime.ForName(cfg.RegimePolicy))

	var tn *notifier.TelegramNotifier
	if cfg.AlertsEnabled() {
		tn, err = notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create Telegram notifier")
		}
		logger.Info().Int64("chat_id", cfg.TelegramChatID).Msg("Telegram alerts enabled")
	} else {
		logger.Info().Msg("Telegram alerts disabled")
	}

	var db *database.DB
	if cfg.PersistenceEnabled() {
		db, err = database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		logger.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("Persistence enabled")
	} else {
		logger.Info().Msg("Persistence disabled")
	}

	sched := scheduler.NewScheduler(ctx, client, analyzer, tn, db, cfg.Symbols, logger)
	if err := sched.Register(cfg.WatchCron); err != nil {
		logger.Fatal().Err(err).Str("cron", cfg.WatchCron).Msg("Failed to register watch task")
	}

	sched.Start()
	sched.RunNow()

	<-ctx.Done()
	sched.Stop()
	logger.Info().Msg("Market monitor stopped")
}

func setupSignalHandling(cancel context.CancelFunc, logger zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()
}
