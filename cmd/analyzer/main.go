package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"coinsight/internal/analyze"
	"coinsight/internal/api/coingecko"
	"coinsight/internal/config"
	"coinsight/internal/notifier"
	"coinsight/internal/regime"
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

	client := coingecko.NewClient(coingecko.ClientOptions{
		BaseURL:        cfg.APIBaseURL,
		APIKey:         cfg.APIKey,
		VsCurrency:     cfg.VsCurrency,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	})

	analyzer := analyze.New(regime.ForName(cfg.RegimePolicy))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snaps, err := client.FetchSnapshots(ctx, cfg.Symbols)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to fetch snapshots")
	}
	if len(snaps) == 0 {
		logger.Fatal().Strs("symbols", cfg.Symbols).Msg("No market data returned for watchlist")
	}

	results := analyzer.AnalyzeBatch(snaps)

	for i, snap := range snaps {
		result := results[i]

		fmt.Printf("===== %s =====\n", result.Symbol)
		fmt.Printf("Price: %.4f (%+.2f%% 24h)\n", snap.Price, snap.Change24h)
		fmt.Printf("Regime: %s\n", result.Regime)
		fmt.Printf("Signal: %s (confidence %.0f%%, risk %.0f/100)\n",
			result.PrimarySignal, result.OverallConfidence, result.RiskScore)
		for _, s := range result.Signals {
			fmt.Printf("  %s: %s (%.0f%%) %s\n", s.StrategyName, s.Signal, s.Confidence, s.Reasoning)
		}

		if crash := analyzer.DetectCrash(snap); crash.IsCrashing {
			fmt.Printf("CRASH: %s (confidence %.0f%%) %s\n",
				crash.Severity, crash.Confidence, crash.Recommendation)
		}
		if entry := analyzer.DetectBullEntry(snap); entry.IsEntry {
			fmt.Printf("BULL ENTRY: %s (confidence %.0f%%) %s\n",
				entry.Strength, entry.Confidence, entry.Recommendation)
		}
		fmt.Println()
	}

	if cfg.AlertsEnabled() {
		tn, err := notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create Telegram notifier")
			return
		}
		for i := range results {
			if err := tn.SendWithRetry(ctx, notifier.FormatAnalysisReport(&results[i])); err != nil {
				logger.Error().Err(err).Str("symbol", results[i].Symbol).Msg("Failed to send report")
			}
		}
	}
}
