package regime

import (
	"math"

	"coinsight/internal/indicators"
	"coinsight/models"
)

// Policy is a named, swappable regime rule table. Classification is a pure
// total function of the core indicator set and the snapshot.
type Policy interface {
	Name() string
	Classify(set indicators.IndicatorSet, snap *models.PriceSnapshot) models.MarketRegime
}

// ForName resolves a policy by its config name; unknown names fall back to
// the canonical band policy.
func ForName(name string) Policy {
	if name == "trend" {
		return TrendPolicy{}
	}
	return BandPolicy{}
}

// BandPolicy is the canonical Bollinger-keyed rule table. Rules are
// evaluated in priority order and the first match wins, which resolves
// every overlap deterministically.
type BandPolicy struct{}

func (BandPolicy) Name() string { return "band" }

func (BandPolicy) Classify(set indicators.IndicatorSet, snap *models.PriceSnapshot) models.MarketRegime {
	bb := indicators.Bollinger(snap)

	switch {
	case set.ATR.Normalized > 10 || bb.Width > 0.30:
		return models.RegimeHighVolatility
	case bb.Width < 0.10:
		return models.RegimeLowVolatility
	case bb.PercentB > 0.90 || bb.PercentB < 0.10:
		return models.RegimeMeanReversion
	case math.Abs(set.RSI.Value-50) > 20:
		if set.RSI.Value > 50 && snap.Change24h > 0 {
			return models.RegimeBullMarket
		}
		if set.RSI.Value < 50 && snap.Change24h < 0 {
			return models.RegimeBearMarket
		}
		return models.RegimeTrending
	default:
		return models.RegimeSideways
	}
}

// TrendPolicy is the historical ADX/ATR-keyed table, kept selectable for
// comparison runs but not the default.
type TrendPolicy struct{}

func (TrendPolicy) Name() string { return "trend" }

func (TrendPolicy) Classify(set indicators.IndicatorSet, snap *models.PriceSnapshot) models.MarketRegime {
	switch {
	case set.ATR.Normalized > 8:
		return models.RegimeHighVolatility
	case set.ATR.Normalized < 1.5:
		return models.RegimeLowVolatility
	case set.ADX.ADX > 40:
		if snap.Change24h > 0 {
			return models.RegimeBullMarket
		}
		if snap.Change24h < 0 {
			return models.RegimeBearMarket
		}
		return models.RegimeTrending
	case set.ADX.ADX > 25:
		return models.RegimeTrending
	case math.Abs(set.RSI.Value-50) > 25:
		return models.RegimeMeanReversion
	default:
		return models.RegimeSideways
	}
}
