package strategy

import (
	"fmt"
	"strings"
	"time"

	"coinsight/internal/indicators"
	"coinsight/internal/utils"
	"coinsight/models"
)

// Risk scores are clamped to [15,85]: a single-snapshot engine never has
// grounds to claim zero or total risk.
const (
	RiskFloor = 15
	RiskCeil  = 85
)

// regimeBaseRisk is the starting downside estimate per regime, before the
// confidence, volatility and agreement adjustments.
var regimeBaseRisk = map[models.MarketRegime]float64{
	models.RegimeHighVolatility: 75,
	models.RegimeBearMarket:     65,
	models.RegimeMeanReversion:  55,
	models.RegimeTrending:       50,
	models.RegimeSideways:       45,
	models.RegimeBullMarket:     40,
	models.RegimeLowVolatility:  30,
}

// Combine merges strategy opinions into the terminal decision. A single
// opinion passes through unchanged as the primary signal; multiple
// opinions are merged by confidence-weighted score averaging.
func Combine(regime models.MarketRegime, snap *models.PriceSnapshot, set indicators.IndicatorSet, signals []models.StrategySignal) models.StrategyResult {
	result := models.StrategyResult{
		Symbol:    snap.Symbol,
		Regime:    regime,
		Signals:   signals,
		Timestamp: snap.Timestamp,
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now().UTC()
	}

	switch len(signals) {
	case 0:
		result.PrimarySignal = models.SignalHold
		result.OverallConfidence = 0
	case 1:
		result.PrimarySignal = signals[0].Signal
		result.OverallConfidence = signals[0].Confidence
	default:
		result.PrimarySignal, result.OverallConfidence = merge(signals)
	}

	result.Reasoning = MergeReasoning(signals)
	result.Metrics = MergeMetrics(signals)
	result.RiskScore = riskScore(regime, set, result.OverallConfidence, snap)
	return result
}

// merge converts each opinion to its numeric anchor, averages the scores
// weighted by confidence, and maps back through the canonical table.
// Confidence itself averages unweighted.
func merge(signals []models.StrategySignal) (models.Signal, float64) {
	var weightedSum, confSum float64
	for _, s := range signals {
		weightedSum += SignalToScore(s.Signal) * s.Confidence
		confSum += s.Confidence
	}

	score := utils.SafeDiv(weightedSum, confSum, 0)
	avgConf := utils.Round2(confSum / float64(len(signals)))
	return ScoreToSignal(score), avgConf
}

// MergeReasoning concatenates each opinion's reasoning prefixed by its
// strategy name, in execution order.
func MergeReasoning(signals []models.StrategySignal) string {
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		parts = append(parts, fmt.Sprintf("%s: %s", s.StrategyName, s.Reasoning))
	}
	return strings.Join(parts, " | ")
}

// MergeMetrics flattens all opinions' metrics under {strategy}_{key} keys
// so same-named metrics never collide.
func MergeMetrics(signals []models.StrategySignal) map[string]float64 {
	merged := make(map[string]float64)
	for _, s := range signals {
		for k, v := range s.Metrics {
			merged[fmt.Sprintf("%s_%s", s.StrategyName, k)] = v
		}
	}
	return merged
}

// riskScore starts from the regime's base risk and adjusts it for
// decision confidence, realized volatility and indicator agreement.
func riskScore(regime models.MarketRegime, set indicators.IndicatorSet, overallConf float64, snap *models.PriceSnapshot) float64 {
	base, ok := regimeBaseRisk[regime]
	if !ok {
		base = 50
	}
	agreement := indicators.DirectionalAgreement(snap)

	risk := base +
		(50-overallConf)*0.2 +
		utils.Clamp(set.ATR.Normalized, 0, 20)*0.8 -
		agreement*10
	return utils.Round2(utils.Clamp(risk, RiskFloor, RiskCeil))
}
