package regime

import (
	"testing"

	"coinsight/internal/indicators"
	"coinsight/models"
)

func classify(t *testing.T, p Policy, snap *models.PriceSnapshot) models.MarketRegime {
	t.Helper()
	return p.Classify(indicators.Compute(snap), snap)
}

func TestBandPolicy(t *testing.T) {
	tests := []struct {
		name     string
		snap     *models.PriceSnapshot
		expected models.MarketRegime
	}{
		{
			name: "extreme range wins over everything",
			snap: &models.PriceSnapshot{
				Price: 48000, High24h: 60000, Low24h: 46000, Change24h: -20,
			},
			expected: models.RegimeHighVolatility,
		},
		{
			name: "narrow band is low volatility",
			snap: &models.PriceSnapshot{
				Price: 100, High24h: 100.5, Low24h: 99.5, Change24h: 0,
			},
			expected: models.RegimeLowVolatility,
		},
		{
			name: "band-pinned price is mean reversion",
			snap: &models.PriceSnapshot{
				Price: 112, High24h: 105, Low24h: 100, Change24h: 4,
			},
			expected: models.RegimeMeanReversion,
		},
		{
			name: "strong rsi with rising change is bull market",
			snap: &models.PriceSnapshot{
				Price: 110, High24h: 110, Low24h: 100, Change24h: 8,
			},
			expected: models.RegimeBullMarket,
		},
		{
			name: "weak rsi with falling change is bear market",
			snap: &models.PriceSnapshot{
				Price: 100, High24h: 110, Low24h: 100, Change24h: -8,
			},
			expected: models.RegimeBearMarket,
		},
		{
			name: "strong rsi against the change is trending",
			snap: &models.PriceSnapshot{
				Price: 105, High24h: 104, Low24h: 100, Change24h: -1,
			},
			expected: models.RegimeTrending,
		},
		{
			name: "nothing distinctive is sideways",
			snap: &models.PriceSnapshot{
				Price: 100, High24h: 105, Low24h: 95, Change24h: 0,
			},
			expected: models.RegimeSideways,
		},
	}

	policy := BandPolicy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(t, policy, tt.snap); got != tt.expected {
				t.Errorf("regime = %q, want %q", got, tt.expected)
			}
		})
	}
}

// A snapshot that satisfies both the volatility and the band-extreme rules
// must resolve to high volatility: rule order is part of the contract.
func TestBandPolicyPriority(t *testing.T) {
	snap := &models.PriceSnapshot{
		Price: 118, High24h: 120, Low24h: 100, Change24h: 15,
	}
	set := indicators.Compute(snap)
	if set.ATR.Normalized <= 10 {
		t.Fatalf("test snapshot must exceed the volatility cutoff, got ATR %v", set.ATR.Normalized)
	}

	if got := (BandPolicy{}).Classify(set, snap); got != models.RegimeHighVolatility {
		t.Errorf("regime = %q, want %q", got, models.RegimeHighVolatility)
	}
}

func TestTrendPolicy(t *testing.T) {
	tests := []struct {
		name     string
		snap     *models.PriceSnapshot
		expected models.MarketRegime
	}{
		{
			name: "wide bar is high volatility",
			snap: &models.PriceSnapshot{
				Price: 48000, High24h: 60000, Low24h: 46000, Change24h: -20,
			},
			expected: models.RegimeHighVolatility,
		},
		{
			name: "tight bar is low volatility",
			snap: &models.PriceSnapshot{
				Price: 100, High24h: 100.5, Low24h: 99.5, Change24h: 0,
			},
			expected: models.RegimeLowVolatility,
		},
		{
			name: "strong directional move is bull market",
			snap: &models.PriceSnapshot{
				Price: 110, High24h: 110, Low24h: 104, Change24h: 8,
			},
			expected: models.RegimeBullMarket,
		},
	}

	policy := TrendPolicy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(t, policy, tt.snap); got != tt.expected {
				t.Errorf("regime = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected string
	}{
		{name: "band", arg: "band", expected: "band"},
		{name: "trend", arg: "trend", expected: "trend"},
		{name: "unknown falls back to band", arg: "bogus", expected: "band"},
		{name: "empty falls back to band", arg: "", expected: "band"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForName(tt.arg).Name(); got != tt.expected {
				t.Errorf("ForName(%q).Name() = %q, want %q", tt.arg, got, tt.expected)
			}
		})
	}
}
