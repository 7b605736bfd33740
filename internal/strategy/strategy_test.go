package strategy

import (
	"testing"

	"coinsight/internal/indicators"
	"coinsight/models"
)

func evaluate(t *testing.T, s Strategy, snap *models.PriceSnapshot) models.StrategySignal {
	t.Helper()
	sig := s.Evaluate(snap, indicators.Compute(snap))
	if sig.Confidence < 0 || sig.Confidence > ConfidenceCeil {
		t.Errorf("%s confidence %v escaped [0, %v]", s.Name(), sig.Confidence, ConfidenceCeil)
	}
	if sig.StrategyName != s.Name() {
		t.Errorf("signal carries name %q, want %q", sig.StrategyName, s.Name())
	}
	return sig
}

func TestMomentumStrategyRidesTheTrend(t *testing.T) {
	// Strong up day, RSI not yet overbought, MACD bullish.
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 103.25, High24h: 105, Low24h: 100, Change24h: 3,
		ATH: 200, ATL: 50,
	}

	sig := evaluate(t, MomentumStrategy{}, snap)
	if sig.Signal != models.SignalBuy && sig.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want a buy-side signal", sig.Signal)
	}
	if sig.Reasoning == "" {
		t.Error("a directional opinion must carry reasoning")
	}
}

func TestMomentumStrategyFlatMarketHolds(t *testing.T) {
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 100, High24h: 101, Low24h: 99, Change24h: 0,
	}

	sig := evaluate(t, MomentumStrategy{}, snap)
	if sig.Signal != models.SignalHold {
		t.Errorf("signal = %s, want HOLD", sig.Signal)
	}
	if sig.Reasoning != "no directional momentum evidence" {
		t.Errorf("reasoning = %q, want the neutral fallback", sig.Reasoning)
	}
}

func TestMeanReversionFadesACrash(t *testing.T) {
	// Deep oversold: RSI pinned, price at the lower band, big dip.
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 46500, High24h: 60000, Low24h: 46000, Change24h: -20,
	}

	sig := evaluate(t, MeanReversionStrategy{}, snap)
	if sig.Signal != models.SignalBuy && sig.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want a buy-side fade", sig.Signal)
	}
}

func TestBreakoutStrategyRequiresSqueeze(t *testing.T) {
	// Wide band: no squeeze, the strategy must stand down.
	wide := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 100, High24h: 110, Low24h: 90, Change24h: 2,
	}
	sig := evaluate(t, BreakoutStrategy{}, wide)
	if sig.Signal != models.SignalHold {
		t.Errorf("signal without squeeze = %s, want HOLD", sig.Signal)
	}
	if sig.Confidence != ConfidenceFloor {
		t.Errorf("confidence without squeeze = %v, want the floor %v", sig.Confidence, ConfidenceFloor)
	}
}

func TestBreakoutStrategyTradesTheSqueezeBreak(t *testing.T) {
	// Narrow band with the price escaping above it on confirming volume.
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 103.5, High24h: 102, Low24h: 100, Change24h: 3,
		Volume24h: 8, MarketCap: 100,
	}
	set := indicators.Compute(snap)
	bb := indicators.Bollinger(snap)
	if !bb.Squeeze {
		t.Fatalf("test snapshot must squeeze, got width %v", bb.Width)
	}

	sig := BreakoutStrategy{}.Evaluate(snap, set)
	if sig.Signal == models.SignalSell || sig.Signal == models.SignalStrongSell {
		t.Errorf("signal = %s, want a buy-side or neutral breakout read", sig.Signal)
	}
	if sig.Metrics["squeeze_intensity"] <= 0 {
		t.Errorf("squeeze intensity = %v, want positive", sig.Metrics["squeeze_intensity"])
	}
}

func TestVolatilityStrategyRequiresConfirmedExtreme(t *testing.T) {
	// Volatile but mid-band: no trade.
	midBand := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 100, High24h: 112, Low24h: 88, Change24h: 1,
	}
	sig := evaluate(t, VolatilityStrategy{}, midBand)
	if sig.Signal != models.SignalHold {
		t.Errorf("signal without extreme = %s, want HOLD", sig.Signal)
	}
}

func TestVolatilityStrategyFadesALowerExtreme(t *testing.T) {
	// Price pinned under the lower band with RSI confirming oversold.
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 88, High24h: 100, Low24h: 95, Change24h: -15,
	}
	set := indicators.Compute(snap)
	bb := indicators.Bollinger(snap)
	if bb.PercentB > 0.1 || set.RSI.Value > 30 {
		t.Fatalf("test snapshot must be a confirmed lower extreme, got %%B %v RSI %v", bb.PercentB, set.RSI.Value)
	}

	sig := VolatilityStrategy{}.Evaluate(snap, set)
	if sig.Signal != models.SignalBuy && sig.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want a buy-side fade", sig.Signal)
	}
}

func TestForRegime(t *testing.T) {
	tests := []struct {
		regime   models.MarketRegime
		expected []string
	}{
		{models.RegimeBullMarket, []string{"momentum"}},
		{models.RegimeBearMarket, []string{"momentum"}},
		{models.RegimeTrending, []string{"momentum"}},
		{models.RegimeMeanReversion, []string{"mean_reversion"}},
		{models.RegimeSideways, []string{"mean_reversion"}},
		{models.RegimeLowVolatility, []string{"breakout", "mean_reversion"}},
		{models.RegimeHighVolatility, []string{"volatility"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.regime), func(t *testing.T) {
			strategies := ForRegime(tt.regime)
			if len(strategies) != len(tt.expected) {
				t.Fatalf("got %d strategies, want %d", len(strategies), len(tt.expected))
			}
			for i, s := range strategies {
				if s.Name() != tt.expected[i] {
					t.Errorf("strategy %d = %q, want %q", i, s.Name(), tt.expected[i])
				}
			}
		})
	}
}

func TestExecuteUnknownRegimeDegradesToHold(t *testing.T) {
	snap := &models.PriceSnapshot{Symbol: "bitcoin", Price: 100}
	set := indicators.Compute(snap)

	signals := Execute(models.MarketRegime("UNKNOWN"), snap, set)
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want exactly one neutral opinion", len(signals))
	}
	if signals[0].Signal != models.SignalHold || signals[0].Confidence != 0 {
		t.Errorf("neutral opinion = %s conf %v, want HOLD conf 0", signals[0].Signal, signals[0].Confidence)
	}
}

func TestExecuteProducesOneOpinionPerStrategy(t *testing.T) {
	snap := &models.PriceSnapshot{
		Symbol: "bitcoin", Price: 100, High24h: 101, Low24h: 99, Change24h: 0,
	}
	set := indicators.Compute(snap)

	signals := Execute(models.RegimeLowVolatility, snap, set)
	if len(signals) != 2 {
		t.Fatalf("got %d signals for the low volatility pair, want 2", len(signals))
	}
	if signals[0].StrategyName != "breakout" || signals[1].StrategyName != "mean_reversion" {
		t.Errorf("signals = [%s, %s], want [breakout, mean_reversion]",
			signals[0].StrategyName, signals[1].StrategyName)
	}
}
