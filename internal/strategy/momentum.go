package strategy

import (
	"fmt"
	"strings"

	"coinsight/internal/indicators"
	"coinsight/internal/utils"
	"coinsight/models"
)

// Strategy is a pure scoring function specialized for a regime; one
// execution produces one opinion.
type Strategy interface {
	Name() string
	Evaluate(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.StrategySignal
}

// MomentumStrategy trades with the prevailing move: RSI, MACD trend, 24h
// change and RSI divergence, weighted 30/30/25/15.
type MomentumStrategy struct{}

func (MomentumStrategy) Name() string { return "momentum" }

func (s MomentumStrategy) Evaluate(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.StrategySignal {
	votes := []vote{
		{weight: 30, direction: rsiMomentumDirection(set.RSI), reason: rsiReason(set.RSI)},
		{weight: 30, direction: trendDirection(set.MACD.Trend), reason: macdReason(set.MACD)},
		{weight: 25, direction: changeDirection(snap.Change24h, 2), reason: changeReason(snap.Change24h, 2)},
		{weight: 15, direction: trendDirection(set.Divergence.Classification), reason: divergenceReason(set.Divergence)},
	}

	score, agreement, reasons := tally(votes)
	signal := mapScore(score, buyThreshold, strongThreshold)
	conf := confidence(score, agreement, set.ADX.ADX, set.ATR.Normalized)

	return models.StrategySignal{
		StrategyName: s.Name(),
		Signal:       signal,
		Confidence:   conf,
		Reasoning:    joinReasons(reasons, "no directional momentum evidence"),
		Metrics: map[string]float64{
			"score":      utils.Round2(score),
			"agreement":  utils.Round2(agreement),
			"rsi":        set.RSI.Value,
			"macd_hist":  set.MACD.Histogram,
			"change_24h": snap.Change24h,
			"adx":        set.ADX.ADX,
		},
	}
}

// rsiMomentumDirection reads RSI with the trend: oversold is a buy, the
// overbought extreme a sell.
func rsiMomentumDirection(rsi indicators.RSIResult) int {
	switch {
	case rsi.Value <= 30:
		return 1
	case rsi.Value >= 70:
		return -1
	default:
		return 0
	}
}

func rsiReason(rsi indicators.RSIResult) string {
	switch {
	case rsi.Value <= 30:
		return fmt.Sprintf("RSI oversold at %.1f", rsi.Value)
	case rsi.Value >= 70:
		return fmt.Sprintf("RSI overbought at %.1f", rsi.Value)
	default:
		return ""
	}
}

// trendDirection maps a BULLISH/BEARISH label to a vote direction.
func trendDirection(label string) int {
	switch label {
	case "BULLISH":
		return 1
	case "BEARISH":
		return -1
	default:
		return 0
	}
}

func macdReason(macd indicators.MACDResult) string {
	switch macd.Trend {
	case "BULLISH":
		return fmt.Sprintf("MACD histogram positive (%.4f)", macd.Histogram)
	case "BEARISH":
		return fmt.Sprintf("MACD histogram negative (%.4f)", macd.Histogram)
	default:
		return ""
	}
}

// changeDirection votes on the 24h change beyond the given percent
// threshold.
func changeDirection(change, threshold float64) int {
	switch {
	case change > threshold:
		return 1
	case change < -threshold:
		return -1
	default:
		return 0
	}
}

func changeReason(change, threshold float64) string {
	switch {
	case change > threshold:
		return fmt.Sprintf("24h change up %.1f%%", change)
	case change < -threshold:
		return fmt.Sprintf("24h change down %.1f%%", change)
	default:
		return ""
	}
}

func divergenceReason(div indicators.DivergenceResult) string {
	switch div.Classification {
	case "BULLISH":
		return fmt.Sprintf("bullish RSI divergence (%.2f)", div.Score)
	case "BEARISH":
		return fmt.Sprintf("bearish RSI divergence (%.2f)", div.Score)
	default:
		return ""
	}
}

// joinReasons renders the triggered observations in their fixed order.
func joinReasons(reasons []string, fallback string) string {
	if len(reasons) == 0 {
		return fallback
	}
	return strings.Join(reasons, "; ")
}
