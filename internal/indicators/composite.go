package indicators

import (
	"math"

	"coinsight/internal/utils"
	"coinsight/models"
)

// MeanReversionResult scores how stretched the price is from its anchors.
type MeanReversionResult struct {
	Score          float64 `json:"score"` // 0-100
	Setup          bool    `json:"setup"` // true when the stretch is tradeable
	Classification string  `json:"classification"`
}

// MeanReversionScore blends four stretch measures: %B distance from
// center (30%), Bollinger width (25%), distance from the moving average
// (25%) and Keltner width (20%). Higher means more stretched.
func MeanReversionScore(snap *models.PriceSnapshot) MeanReversionResult {
	bb := Bollinger(snap)
	kc := Keltner(snap)

	pbStretch := utils.Clamp(math.Abs(bb.PercentB-0.5)*2, 0, 1) * 100
	widthStretch := utils.Clamp(bb.Width/0.3, 0, 1) * 100
	maDistance := utils.Clamp(utils.SafeDiv(math.Abs(snap.Price-bb.Middle), bb.Middle, 0)/0.1, 0, 1) * 100
	kcStretch := utils.Clamp(kc.Width/0.2, 0, 1) * 100

	score := utils.Round2(0.30*pbStretch + 0.25*widthStretch + 0.25*maDistance + 0.20*kcStretch)

	var label string
	switch {
	case score >= 80:
		label = "EXTREME"
	case score >= 60:
		label = "STRONG"
	case score >= 40:
		label = "MODERATE"
	default:
		label = "WEAK"
	}
	return MeanReversionResult{Score: score, Setup: score >= 60, Classification: label}
}

// NoiseResult discounts signal trustworthiness on a 0-100 scale; higher
// means noisier.
type NoiseResult struct {
	Score          float64 `json:"score"`
	Agreement      float64 `json:"agreement"` // 0-1 directional agreement
	Classification string  `json:"classification"`
}

// NoiseScore blends trend absence (weak ADX), normalized ATR and
// directional disagreement between the basic indicators into a 0-100
// trustworthiness discount.
func NoiseScore(snap *models.PriceSnapshot) NoiseResult {
	adx := ADX(snap)
	atr := ATR(snap)
	agreement := DirectionalAgreement(snap)

	score := utils.Round2(utils.Clamp(
		0.4*(100-adx.ADX)+
			0.3*utils.Clamp(atr.Normalized*5, 0, 100)+
			0.3*(100-agreement*100),
		0, 100))

	var label string
	switch {
	case score >= 70:
		label = "HIGH_NOISE"
	case score >= 40:
		label = "MODERATE_NOISE"
	default:
		label = "LOW_NOISE"
	}
	return NoiseResult{Score: score, Agreement: utils.Round4(agreement), Classification: label}
}

// DirectionalAgreement is the fraction of the basic directional reads
// (RSI side, MACD trend, 24h change sign, %B side) pointing the same way.
// With no directional reads at all the agreement is the neutral 0.5.
func DirectionalAgreement(snap *models.PriceSnapshot) float64 {
	rsi := RSI(snap)
	macd := MACD(snap)
	bb := Bollinger(snap)

	var up, down int
	vote := func(dir int) {
		if dir > 0 {
			up++
		} else if dir < 0 {
			down++
		}
	}

	switch {
	case rsi.Value > 55:
		vote(1)
	case rsi.Value < 45:
		vote(-1)
	}
	switch macd.Trend {
	case "BULLISH":
		vote(1)
	case "BEARISH":
		vote(-1)
	}
	switch {
	case snap.Change24h > 0:
		vote(1)
	case snap.Change24h < 0:
		vote(-1)
	}
	switch {
	case bb.PercentB > 0.55:
		vote(1)
	case bb.PercentB < 0.45:
		vote(-1)
	}

	total := up + down
	if total == 0 {
		return 0.5
	}
	return float64(maxInt(up, down)) / float64(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
