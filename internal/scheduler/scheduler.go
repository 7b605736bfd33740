package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"coinsight/internal/analyze"
	"coinsight/internal/api/coingecko"
	"coinsight/internal/database"
	"coinsight/internal/notifier"
	"coinsight/models"
)

// Scheduler runs the periodic watch task over the configured symbols.
// Notifier and Recorder are optional; a nil value disables that sink.
type Scheduler struct {
	Cron     *cron.Cron
	Client   *coingecko.Client
	Analyzer *analyze.Analyzer
	Notifier *notifier.TelegramNotifier
	Recorder *database.DB
	Symbols  []string
	Ctx      context.Context

	logger zerolog.Logger
}

// NewScheduler creates a scheduler bound to the given pipeline components.
func NewScheduler(ctx context.Context, client *coingecko.Client, analyzer *analyze.Analyzer, tn *notifier.TelegramNotifier, rec *database.DB, symbols []string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Client:   client,
		Analyzer: analyzer,
		Notifier: tn,
		Recorder: rec,
		Symbols:  symbols,
		Ctx:      ctx,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// Register registers the watch task on the given cron expression.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Str("symbols", fmt.Sprint(s.Symbols)).Msg("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info().Msg("Scheduler stopped")
}

// RunNow executes the watch task immediately.
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	ctx, cancel := context.WithTimeout(s.Ctx, time.Minute)
	defer cancel()

	snaps, err := s.Client.FetchSnapshots(ctx, s.Symbols)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch snapshots")
		return
	}

	results := s.Analyzer.AnalyzeBatch(snaps)

	for i, snap := range snaps {
		result := results[i]
		s.logger.Info().
			Str("symbol", result.Symbol).
			Str("regime", string(result.Regime)).
			Str("signal", string(result.PrimarySignal)).
			Float64("confidence", result.OverallConfidence).
			Float64("risk", result.RiskScore).
			Msg("Watch analysis complete")

		if s.Recorder != nil {
			if err := s.Recorder.SaveResult(&result); err != nil {
				s.logger.Error().Err(err).Str("symbol", result.Symbol).Msg("Failed to record analysis")
			}
		}

		crash := s.Analyzer.DetectCrash(snap)
		if crash.IsCrashing {
			s.handleCrash(&crash)
		}

		entry := s.Analyzer.DetectBullEntry(snap)
		if entry.IsEntry {
			s.handleEntry(&entry)
		}
	}
}

func (s *Scheduler) handleCrash(sig *models.CrashSignal) {
	s.logger.Warn().
		Str("symbol", sig.Symbol).
		Str("severity", string(sig.Severity)).
		Float64("confidence", sig.Confidence).
		Msg("Crash signal triggered")

	s.trySend(notifier.FormatCrashAlert(sig))

	if s.Recorder != nil {
		if err := s.Recorder.SaveCrashSignal(sig); err != nil {
			s.logger.Error().Err(err).Str("symbol", sig.Symbol).Msg("Failed to record crash signal")
		}
	}
}

func (s *Scheduler) handleEntry(sig *models.EntrySignal) {
	s.logger.Info().
		Str("symbol", sig.Symbol).
		Str("strength", string(sig.Strength)).
		Float64("confidence", sig.Confidence).
		Msg("Bull entry signal triggered")

	s.trySend(notifier.FormatEntryAlert(sig))

	if s.Recorder != nil {
		if err := s.Recorder.SaveEntrySignal(sig); err != nil {
			s.logger.Error().Err(err).Str("symbol", sig.Symbol).Msg("Failed to record entry signal")
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text); err != nil {
		s.logger.Error().Err(err).Msg("Failed to send notification")
	}
}
