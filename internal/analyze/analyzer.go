package analyze

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"coinsight/internal/detect"
	"coinsight/internal/indicators"
	"coinsight/internal/regime"
	"coinsight/internal/strategy"
	"coinsight/models"
)

// Analyzer turns one price snapshot into a trading decision. It holds no
// mutable state: every invocation synthesizes its own derived data, so
// concurrent analyses of different symbols are fully independent.
type Analyzer struct {
	policy regime.Policy
	logger zerolog.Logger
}

// New builds an Analyzer with the given regime policy; nil selects the
// canonical band policy.
func New(policy regime.Policy) *Analyzer {
	if policy == nil {
		policy = regime.BandPolicy{}
	}
	return &Analyzer{
		policy: policy,
		logger: log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze runs the full pipeline: aggregate the core indicators, classify
// the regime, execute the qualified strategies and combine their opinions.
func (a *Analyzer) Analyze(snap *models.PriceSnapshot) models.StrategyResult {
	set := indicators.Compute(snap)
	reg := a.policy.Classify(set, snap)
	signals := strategy.Execute(reg, snap, set)
	result := strategy.Combine(reg, snap, set, signals)

	a.logger.Debug().
		Str("symbol", snap.Symbol).
		Str("regime", string(reg)).
		Str("signal", string(result.PrimarySignal)).
		Float64("confidence", result.OverallConfidence).
		Float64("risk", result.RiskScore).
		Msg("analysis complete")
	return result
}

// AnalyzeBatch analyzes each snapshot independently, preserving input
// order. Elements share nothing, so they run in parallel.
func (a *Analyzer) AnalyzeBatch(snaps []*models.PriceSnapshot) []models.StrategyResult {
	results := make([]models.StrategyResult, len(snaps))
	var wg sync.WaitGroup
	for i, snap := range snaps {
		wg.Add(1)
		go func(i int, snap *models.PriceSnapshot) {
			defer wg.Done()
			results[i] = a.Analyze(snap)
		}(i, snap)
	}
	wg.Wait()
	return results
}

// DetectCrash evaluates the crash detector for one snapshot.
func (a *Analyzer) DetectCrash(snap *models.PriceSnapshot) models.CrashSignal {
	return detect.Crash(snap, indicators.Compute(snap))
}

// DetectBullEntry evaluates the bull-entry detector for one snapshot.
func (a *Analyzer) DetectBullEntry(snap *models.PriceSnapshot) models.EntrySignal {
	return detect.BullEntry(snap, indicators.Compute(snap))
}
