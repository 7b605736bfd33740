package indicators

import (
	"math"
	"testing"

	"coinsight/models"
)

func TestComputeMatchesIndividualIndicators(t *testing.T) {
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 48000, High24h: 60000, Low24h: 46000,
		Volume24h: 12e9, MarketCap: 96e9, Change24h: -20, ATH: 69000, ATL: 65,
	}

	set := Compute(snap)

	if set.RSI != RSI(snap) {
		t.Errorf("aggregated RSI %+v differs from direct computation", set.RSI)
	}
	if set.MACD != MACD(snap) {
		t.Errorf("aggregated MACD %+v differs from direct computation", set.MACD)
	}
	if set.ADX != ADX(snap) {
		t.Errorf("aggregated ADX %+v differs from direct computation", set.ADX)
	}
	if set.ATR != ATR(snap) {
		t.Errorf("aggregated ATR %+v differs from direct computation", set.ATR)
	}
	if set.VolumeROC != VolumeROC(snap) {
		t.Errorf("aggregated VolumeROC %+v differs from direct computation", set.VolumeROC)
	}
	if set.Drawdown != Drawdown(snap) {
		t.Errorf("aggregated Drawdown %+v differs from direct computation", set.Drawdown)
	}
	if set.Divergence != RSIDivergence(snap, set.RSI) {
		t.Errorf("aggregated Divergence %+v differs from direct computation", set.Divergence)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	snap := &models.PriceSnapshot{
		Symbol: "ethereum", Price: 3200, High24h: 3300, Low24h: 3100,
		Volume24h: 2e10, MarketCap: 4e11, Change24h: 2.5,
	}

	first := Compute(snap)
	for i := 0; i < 20; i++ {
		if got := Compute(snap); got != first {
			t.Fatalf("run %d produced %+v, want %+v", i, got, first)
		}
	}
}

// Every indicator must stay finite on degenerate snapshots: missing band,
// collapsed band, missing volume, missing extremes.
func TestIndicatorsAreFiniteOnDegenerateInput(t *testing.T) {
	snaps := []*models.PriceSnapshot{
		{Price: 100},
		{Price: 100, High24h: 100, Low24h: 100, Change24h: 0},
		{Price: 100, Change24h: -100},
		{Price: 0.00001, High24h: 0.00002, Low24h: 0.000005, Change24h: 50},
	}

	for _, snap := range snaps {
		rsi := RSI(snap)
		values := []float64{
			rsi.Value,
			RSIDivergence(snap, rsi).Score,
			Stochastic(snap).K,
			Stochastic(snap).D,
			WilliamsR(snap).Value,
			ROC(snap).Value,
			Momentum(snap).Value,
			MFI(snap).Value,
			MACD(snap).Histogram,
			ADX(snap).ADX,
			ParabolicSAR(snap).Value,
			SuperTrend(snap).Value,
			LinearRegression(snap).Slope,
			ATR(snap).Normalized,
			Bollinger(snap).PercentB,
			Bollinger(snap).Width,
			Keltner(snap).Width,
			Donchian(snap).Position,
			HistoricalVolatility(snap).Value,
			ParkinsonVolatility(snap).Value,
			GarmanKlassVolatility(snap).Value,
			ZScore(snap).Value,
			Drawdown(snap).Value,
			VolumeROC(snap).Value,
			OBV(snap).Value,
			VWAP(snap).Value,
			ChaikinMoneyFlow(snap).Value,
			ADLine(snap).Value,
			Sharpe(snap).Value,
			Sortino(snap).Value,
			Calmar(snap).Value,
			VaR(snap).Value,
			CVaR(snap).Value,
			Beta(snap).Value,
			MeanReversionScore(snap).Score,
			NoiseScore(snap).Score,
			DirectionalAgreement(snap),
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("indicator %d produced %v for snapshot %+v", i, v, snap)
			}
		}
	}
}
