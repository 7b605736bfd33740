package strategy

import (
	"fmt"

	"coinsight/internal/indicators"
	"coinsight/internal/utils"
	"coinsight/models"
)

// MeanReversionStrategy fades stretched readings back toward their
// anchors. It weighs RSI, stochastic, %B, MACD trend, distance from the
// moving average and the 24h change at 25/20/20/20/10/15 (normalized) and
// maps through tighter cut lines than the momentum strategy.
type MeanReversionStrategy struct{}

func (MeanReversionStrategy) Name() string { return "mean_reversion" }

const (
	mrBuyThreshold    = 15
	mrStrongThreshold = 50
)

func (s MeanReversionStrategy) Evaluate(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.StrategySignal {
	stoch := indicators.Stochastic(snap)
	bb := indicators.Bollinger(snap)

	votes := []vote{
		{weight: 25, direction: rsiMomentumDirection(set.RSI), reason: rsiReason(set.RSI)},
		{weight: 20, direction: stochDirection(stoch, set.RSI), reason: stochReason(stoch)},
		{weight: 20, direction: percentBDirection(bb), reason: percentBReason(bb)},
		{weight: 20, direction: trendDirection(set.MACD.Trend), reason: macdReason(set.MACD)},
		{weight: 10, direction: maDistanceDirection(snap, bb), reason: maDistanceReason(snap, bb)},
		{weight: 15, direction: changeDirection(-snap.Change24h, 5), reason: dipReason(snap.Change24h)},
	}

	score, agreement, reasons := tally(votes)
	signal := mapScore(score, mrBuyThreshold, mrStrongThreshold)
	conf := confidence(score, agreement, set.ADX.ADX, set.ATR.Normalized)

	return models.StrategySignal{
		StrategyName: s.Name(),
		Signal:       signal,
		Confidence:   conf,
		Reasoning:    joinReasons(reasons, "price sits near its anchors"),
		Metrics: map[string]float64{
			"score":     utils.Round2(score),
			"agreement": utils.Round2(agreement),
			"rsi":       set.RSI.Value,
			"stoch_k":   stoch.K,
			"percent_b": bb.PercentB,
			"bb_width":  bb.Width,
		},
	}
}

// stochDirection fades stochastic extremes; a band-pinned %K carries no
// information, so the RSI read substitutes.
func stochDirection(stoch indicators.StochasticResult, rsi indicators.RSIResult) int {
	if stoch.Saturated() {
		return rsiMomentumDirection(rsi)
	}
	switch {
	case stoch.K <= 20:
		return 1
	case stoch.K >= 80:
		return -1
	default:
		return 0
	}
}

func stochReason(stoch indicators.StochasticResult) string {
	if stoch.Saturated() {
		return "stochastic pinned to band edge, deferring to RSI"
	}
	switch {
	case stoch.K <= 20:
		return fmt.Sprintf("stochastic %%K oversold at %.1f", stoch.K)
	case stoch.K >= 80:
		return fmt.Sprintf("stochastic %%K overbought at %.1f", stoch.K)
	default:
		return ""
	}
}

// percentBDirection fades band extremes.
func percentBDirection(bb indicators.BollingerResult) int {
	switch {
	case bb.PercentB <= 0.1:
		return 1
	case bb.PercentB >= 0.9:
		return -1
	default:
		return 0
	}
}

func percentBReason(bb indicators.BollingerResult) string {
	switch {
	case bb.PercentB <= 0.1:
		return fmt.Sprintf("price at lower band (%%B %.2f)", bb.PercentB)
	case bb.PercentB >= 0.9:
		return fmt.Sprintf("price at upper band (%%B %.2f)", bb.PercentB)
	default:
		return ""
	}
}

// maDistanceDirection fades a >3% displacement from the band middle.
func maDistanceDirection(snap *models.PriceSnapshot, bb indicators.BollingerResult) int {
	dist := utils.SafeDiv(snap.Price-bb.Middle, bb.Middle, 0) * 100
	switch {
	case dist < -3:
		return 1
	case dist > 3:
		return -1
	default:
		return 0
	}
}

func maDistanceReason(snap *models.PriceSnapshot, bb indicators.BollingerResult) string {
	dist := utils.SafeDiv(snap.Price-bb.Middle, bb.Middle, 0) * 100
	switch {
	case dist < -3:
		return fmt.Sprintf("price %.1f%% below its mean", -dist)
	case dist > 3:
		return fmt.Sprintf("price %.1f%% above its mean", dist)
	default:
		return ""
	}
}

func dipReason(change float64) string {
	switch {
	case change < -5:
		return fmt.Sprintf("fading a %.1f%% dip", change)
	case change > 5:
		return fmt.Sprintf("fading a %.1f%% run-up", change)
	default:
		return ""
	}
}
