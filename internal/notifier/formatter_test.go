package notifier

import (
	"strings"
	"testing"
	"time"

	"coinsight/models"
)

func TestFormatAnalysisReport(t *testing.T) {
	result := &models.StrategyResult{
		Symbol:        "bitcoin",
		Regime:        models.RegimeBullMarket,
		PrimarySignal: models.SignalBuy,
		Signals: []models.StrategySignal{
			{StrategyName: "momentum", Signal: models.SignalBuy, Confidence: 65, Reasoning: "24h change up 8.0%"},
		},
		OverallConfidence: 65,
		RiskScore:         42,
		Reasoning:         "momentum: 24h change up 8.0%",
		Timestamp:         time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	got := FormatAnalysisReport(result)
	for _, want := range []string{"BITCOIN", "BULL_MARKET", "BUY", "65", "42", "momentum: 24h change up 8.0%"} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestFormatCrashAlert(t *testing.T) {
	sig := &models.CrashSignal{
		Symbol:     "bitcoin",
		IsCrashing: true,
		Severity:   models.CrashSeverityExtreme,
		Indicators: models.CrashIndicators{
			RapidDrop: true, VolumeSpike: true, OversoldRSI: true, HighVolatility: true,
		},
		Confidence:     100,
		Recommendation: "Extreme crash conditions.",
	}

	got := FormatCrashAlert(sig)
	for _, want := range []string{"CRASH ALERT", "BITCOIN", "EXTREME", "100", "Extreme crash conditions."} {
		if !strings.Contains(got, want) {
			t.Errorf("alert missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "✅") != 4 {
		t.Errorf("alert must mark all four indicators:\n%s", got)
	}
}

func TestFormatEntryAlert(t *testing.T) {
	sig := &models.EntrySignal{
		Symbol:   "ethereum",
		IsEntry:  true,
		Strength: models.EntryStrengthStrong,
		Indicators: models.EntryIndicators{
			BullishMACD: true, VolumeIncrease: true, TrendConfirmation: true,
		},
		Confidence:     75,
		Recommendation: "Strong entry setup.",
	}

	got := FormatEntryAlert(sig)
	for _, want := range []string{"BULL ENTRY", "ETHEREUM", "STRONG", "75", "Strong entry setup."} {
		if !strings.Contains(got, want) {
			t.Errorf("alert missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "✅") != 3 {
		t.Errorf("alert must mark exactly three indicators:\n%s", got)
	}
}
