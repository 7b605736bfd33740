package strategy

import (
	"coinsight/internal/indicators"
	"coinsight/models"
)

// ForRegime maps a market regime to the strategies qualified to score it.
func ForRegime(regime models.MarketRegime) []Strategy {
	switch regime {
	case models.RegimeBullMarket, models.RegimeBearMarket, models.RegimeTrending:
		return []Strategy{MomentumStrategy{}}
	case models.RegimeMeanReversion, models.RegimeSideways:
		return []Strategy{MeanReversionStrategy{}}
	case models.RegimeLowVolatility:
		return []Strategy{BreakoutStrategy{}, MeanReversionStrategy{}}
	case models.RegimeHighVolatility:
		return []Strategy{VolatilityStrategy{}}
	default:
		return nil
	}
}

// Execute runs the regime's strategies independently and collects their
// opinions. An empty selection degrades to a single neutral HOLD rather
// than failing.
func Execute(regime models.MarketRegime, snap *models.PriceSnapshot, set indicators.IndicatorSet) []models.StrategySignal {
	strategies := ForRegime(regime)
	if len(strategies) == 0 {
		return []models.StrategySignal{neutralSignal()}
	}

	signals := make([]models.StrategySignal, len(strategies))
	for i, s := range strategies {
		signals[i] = s.Evaluate(snap, set)
	}
	return signals
}

func neutralSignal() models.StrategySignal {
	return models.StrategySignal{
		StrategyName: "none",
		Signal:       models.SignalHold,
		Confidence:   0,
		Reasoning:    "no strategy qualified for the detected regime",
	}
}
