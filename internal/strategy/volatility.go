package strategy

import (
	"fmt"
	"math"

	"coinsight/internal/indicators"
	"coinsight/internal/utils"
	"coinsight/models"
)

// VolatilityStrategy trades band extremes in turbulent regimes. It scores
// only when %B is pinned to an extreme and RSI confirms it, discounts the
// raw score by historical volatility and maps through wider cut lines;
// confidence takes a second volatility discount on top of the shared
// penalty.
type VolatilityStrategy struct{}

func (VolatilityStrategy) Name() string { return "volatility" }

const (
	volBuyThreshold    = 40
	volStrongThreshold = 70
)

func (s VolatilityStrategy) Evaluate(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.StrategySignal {
	bb := indicators.Bollinger(snap)
	hv := indicators.HistoricalVolatility(snap)

	upperExtreme := bb.PercentB >= 0.9 && set.RSI.Value >= 70
	lowerExtreme := bb.PercentB <= 0.1 && set.RSI.Value <= 30
	if !upperExtreme && !lowerExtreme {
		return models.StrategySignal{
			StrategyName: s.Name(),
			Signal:       models.SignalHold,
			Confidence:   ConfidenceFloor,
			Reasoning:    "no confirmed band extreme in volatile conditions",
			Metrics: map[string]float64{
				"percent_b":      bb.PercentB,
				"rsi":            set.RSI.Value,
				"historical_vol": hv.Value,
			},
		}
	}

	// Contrarian raw score: extremity beyond the band edge adds weight.
	var raw, extremity float64
	var reason string
	if upperExtreme {
		extremity = utils.Clamp((bb.PercentB-0.9)/0.3, 0, 1)
		raw = -(60 + 40*extremity)
		reason = fmt.Sprintf("upper band extreme (%%B %.2f) with RSI %.1f confirming", bb.PercentB, set.RSI.Value)
	} else {
		extremity = utils.Clamp((0.1-bb.PercentB)/0.3, 0, 1)
		raw = 60 + 40*extremity
		reason = fmt.Sprintf("lower band extreme (%%B %.2f) with RSI %.1f confirming", bb.PercentB, set.RSI.Value)
	}

	volDiscount := 1 - math.Min(hv.Value/100, 0.3)
	score := raw * volDiscount
	signal := mapScore(score, volBuyThreshold, volStrongThreshold)

	agreement := indicators.DirectionalAgreement(snap)
	conf := confidence(score, agreement, set.ADX.ADX, set.ATR.Normalized) * volDiscount
	conf = utils.Round2(utils.Clamp(conf, ConfidenceFloor, ConfidenceCeil))

	reasons := []string{reason, fmt.Sprintf("volatility discount %.2f (historical vol %.0f%%)", volDiscount, hv.Value)}

	return models.StrategySignal{
		StrategyName: s.Name(),
		Signal:       signal,
		Confidence:   conf,
		Reasoning:    joinReasons(reasons, ""),
		Metrics: map[string]float64{
			"score":          utils.Round2(score),
			"raw_score":      utils.Round2(raw),
			"extremity":      utils.Round4(extremity),
			"percent_b":      bb.PercentB,
			"historical_vol": hv.Value,
			"vol_discount":   utils.Round4(volDiscount),
		},
	}
}
