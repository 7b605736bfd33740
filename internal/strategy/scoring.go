package strategy

import (
	"math"

	"coinsight/internal/utils"
	"coinsight/models"
)

// Canonical score→signal cut lines. Strategies with tighter or wider
// personalities pass their own pair through mapScore.
const (
	buyThreshold    = 20
	strongThreshold = 60
)

// Confidence is always reported inside this band: a single snapshot never
// justifies certainty at either end.
const (
	ConfidenceFloor = 20
	ConfidenceCeil  = 90
)

// SignalToScore maps a discrete signal to its canonical numeric anchor.
func SignalToScore(s models.Signal) float64 {
	switch s {
	case models.SignalStrongBuy:
		return 100
	case models.SignalBuy:
		return 50
	case models.SignalSell:
		return -50
	case models.SignalStrongSell:
		return -100
	default:
		return 0
	}
}

// ScoreToSignal maps a weighted score back through the canonical table.
func ScoreToSignal(score float64) models.Signal {
	return mapScore(score, buyThreshold, strongThreshold)
}

// mapScore applies the ordered cut lines, most extreme bands first.
func mapScore(score, buy, strong float64) models.Signal {
	switch {
	case score > strong:
		return models.SignalStrongBuy
	case score < -strong:
		return models.SignalStrongSell
	case score > buy:
		return models.SignalBuy
	case score < -buy:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}

// confidence folds the score magnitude, indicator agreement, trend
// strength and a volatility penalty into the bounded confidence band.
func confidence(score, agreement, adx, normATR float64) float64 {
	raw := ConfidenceFloor +
		math.Abs(score)*0.4 +
		agreement*20 +
		math.Min(adx, 50)*0.3 -
		math.Min(normATR, 20)*0.5
	return utils.Round2(utils.Clamp(raw, ConfidenceFloor, ConfidenceCeil))
}

// vote is one weighted directional opinion inside a strategy.
type vote struct {
	weight    float64
	direction int // -1, 0, +1
	reason    string
}

// tally sums weighted votes into a score normalized to [-100,100] and the
// agreement ratio among non-neutral votes, collecting triggered reasons in
// their declaration order. Agreement here is |net weight| over directional
// weight within one strategy's vote table; the cross-indicator majority
// fraction lives in indicators.DirectionalAgreement and feeds the noise
// and risk scores instead.
func tally(votes []vote) (score float64, agreement float64, reasons []string) {
	var sum, total, agreeing, directional float64
	for _, v := range votes {
		total += v.weight
		if v.direction == 0 {
			continue
		}
		sum += v.weight * float64(v.direction)
		directional += v.weight
		if v.reason != "" {
			reasons = append(reasons, v.reason)
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	score = sum / total * 100
	if directional > 0 {
		agreeing = math.Abs(sum) / directional
	}
	return score, agreeing, reasons
}
