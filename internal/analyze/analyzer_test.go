package analyze

import (
	"fmt"
	"testing"

	"coinsight/internal/regime"
	"coinsight/internal/strategy"
	"coinsight/models"
)

func TestAnalyzeProducesACompleteResult(t *testing.T) {
	a := New(nil)
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 48000, High24h: 60000, Low24h: 46000,
		Volume24h: 12e9, MarketCap: 96e9, Change24h: -20,
	}

	result := a.Analyze(snap)

	if result.Symbol != "bitcoin" {
		t.Errorf("symbol = %q, want bitcoin", result.Symbol)
	}
	if result.Regime != models.RegimeHighVolatility {
		t.Errorf("regime = %s, want HIGH_VOLATILITY", result.Regime)
	}
	if len(result.Signals) == 0 {
		t.Fatal("result carries no strategy opinions")
	}
	if result.PrimarySignal == "" {
		t.Error("primary signal missing")
	}
	if result.RiskScore < strategy.RiskFloor || result.RiskScore > strategy.RiskCeil {
		t.Errorf("risk %v escaped [%v, %v]", result.RiskScore, strategy.RiskFloor, strategy.RiskCeil)
	}
	if result.Timestamp.IsZero() {
		t.Error("timestamp missing")
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := New(regime.BandPolicy{})
	snap := &models.PriceSnapshot{
		Symbol: "ethereum", Price: 3200, High24h: 3300, Low24h: 3100,
		Volume24h: 2e10, MarketCap: 4e11, Change24h: 2.5,
	}

	first := a.Analyze(snap)
	for i := 0; i < 10; i++ {
		got := a.Analyze(snap)
		if got.PrimarySignal != first.PrimarySignal ||
			got.Regime != first.Regime ||
			got.OverallConfidence != first.OverallConfidence ||
			got.RiskScore != first.RiskScore {
			t.Fatalf("run %d produced %+v, want %+v", i, got, first)
		}
	}
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	a := New(nil)

	snaps := make([]*models.PriceSnapshot, 50)
	for i := range snaps {
		snaps[i] = &models.PriceSnapshot{
			Symbol: fmt.Sprintf("coin-%02d", i),
			Price:  100 + float64(i), High24h: 110 + float64(i), Low24h: 95 + float64(i),
			Change24h: float64(i%21) - 10,
		}
	}

	results := a.AnalyzeBatch(snaps)
	if len(results) != len(snaps) {
		t.Fatalf("got %d results, want %d", len(results), len(snaps))
	}
	for i, result := range results {
		if result.Symbol != snaps[i].Symbol {
			t.Errorf("result %d carries %q, want %q", i, result.Symbol, snaps[i].Symbol)
		}
	}
}

func TestAnalyzeBatchMatchesSingleAnalysis(t *testing.T) {
	a := New(nil)
	snaps := []*models.PriceSnapshot{
		{Symbol: "a", Price: 100, High24h: 105, Low24h: 95, Change24h: 3},
		{Symbol: "b", Price: 50, High24h: 51, Low24h: 49, Change24h: 0},
	}

	batch := a.AnalyzeBatch(snaps)
	for i, snap := range snaps {
		single := a.Analyze(snap)
		if batch[i].PrimarySignal != single.PrimarySignal ||
			batch[i].Regime != single.Regime ||
			batch[i].RiskScore != single.RiskScore {
			t.Errorf("batch result %d = %+v, differs from single analysis %+v", i, batch[i], single)
		}
	}
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	a := New(nil)
	if got := a.AnalyzeBatch(nil); len(got) != 0 {
		t.Errorf("got %d results for an empty batch", len(got))
	}
}

func TestDetectorsRunFromTheFacade(t *testing.T) {
	a := New(nil)
	crashBar := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 48000, High24h: 60000, Low24h: 46000,
		Volume24h: 12e9, MarketCap: 96e9, Change24h: -20,
	}

	crash := a.DetectCrash(crashBar)
	if !crash.IsCrashing || crash.Severity != models.CrashSeverityExtreme {
		t.Errorf("crash = %+v, want a triggered EXTREME signal", crash)
	}

	entry := a.DetectBullEntry(crashBar)
	if entry.IsEntry {
		t.Errorf("entry = %+v, a crash bar must not read as a bull entry", entry)
	}
}

func TestNewDefaultsToBandPolicy(t *testing.T) {
	a := New(nil)
	if a.policy.Name() != "band" {
		t.Errorf("default policy = %q, want band", a.policy.Name())
	}

	trend := New(regime.TrendPolicy{})
	if trend.policy.Name() != "trend" {
		t.Errorf("policy = %q, want trend", trend.policy.Name())
	}
}
