package indicators

import (
	"math"

	"coinsight/internal/utils"
	"coinsight/models"
)

// MACDResult holds the snapshot MACD estimate.
type MACDResult struct {
	MACD              float64 `json:"macd"`
	Signal            float64 `json:"signal"`
	Histogram         float64 `json:"histogram"`
	Trend             string  `json:"trend"` // BULLISH, BEARISH, NEUTRAL
	CrossoverStrength float64 `json:"crossover_strength"`
}

// MACD blends the price's distance from the derived-series mean with the
// 24h drift into a momentum line, then smooths it into a signal line. With
// only a degenerate series available this is a direction estimate, not a
// true 12/26 crossover.
func MACD(snap *models.PriceSnapshot) MACDResult {
	closes := Closes(snap)
	mid := utils.SMA(closes, len(closes))
	macdLine := utils.Round4(0.5*(snap.Price-mid) + 0.5*snap.Price*snap.Change24h/100)
	signalLine := utils.Round4(0.8 * macdLine)
	hist := utils.Round4(macdLine - signalLine)

	trend := "NEUTRAL"
	if hist > 0 {
		trend = "BULLISH"
	} else if hist < 0 {
		trend = "BEARISH"
	}
	strength := utils.Round2(utils.Clamp(utils.SafeDiv(absFloat(hist), snap.Price, 0)*1000, 0, 100))
	return MACDResult{MACD: macdLine, Signal: signalLine, Histogram: hist, Trend: trend, CrossoverStrength: strength}
}

// ADXResult holds the directional-movement estimate.
type ADXResult struct {
	ADX            float64 `json:"adx"`
	PlusDI         float64 `json:"plus_di"`
	MinusDI        float64 `json:"minus_di"`
	Classification string  `json:"classification"`
}

// ADX derives directional indicators from the 24h change and band
// position, then folds them into the usual DX ratio. A flat snapshot
// yields 0 (no measurable trend).
func ADX(snap *models.PriceSnapshot) ADXResult {
	pos := utils.Clamp(pricePosition(snap), 0, 1)
	plusDI := utils.Clamp(25+1.5*snap.Change24h+20*(pos-0.5), 0, 100)
	minusDI := utils.Clamp(25-1.5*snap.Change24h-20*(pos-0.5), 0, 100)
	dx := utils.SafeDiv(absFloat(plusDI-minusDI), plusDI+minusDI, 0) * 100

	adx := utils.Round2(utils.Clamp(dx, 0, 100))
	var label string
	switch {
	case adx >= 75:
		label = "EXTREMELY_STRONG_TREND"
	case adx >= 50:
		label = "VERY_STRONG_TREND"
	case adx >= 25:
		label = "STRONG_TREND"
	case adx >= 20:
		label = "MODERATE_TREND"
	default:
		label = "WEAK_TREND"
	}
	return ADXResult{
		ADX:            adx,
		PlusDI:         utils.Round2(plusDI),
		MinusDI:        utils.Round2(minusDI),
		Classification: label,
	}
}

// SARResult holds the Parabolic SAR stop estimate.
type SARResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"` // BULLISH, BEARISH
}

// ParabolicSAR places the stop just beyond the 24h extreme opposite to the
// prevailing direction.
func ParabolicSAR(snap *models.PriceSnapshot) SARResult {
	low, high := snap.Low24h, snap.High24h
	if !snap.HasRange() {
		low = snap.Price * 0.98
		high = snap.Price * 1.02
	}
	if snap.Change24h >= 0 {
		return SARResult{Value: utils.Round4(low * 0.98), Classification: "BULLISH"}
	}
	return SARResult{Value: utils.Round4(high * 1.02), Classification: "BEARISH"}
}

// SuperTrendResult holds the SuperTrend band estimate.
type SuperTrendResult struct {
	Value          float64 `json:"value"`
	UpperBand      float64 `json:"upper_band"`
	LowerBand      float64 `json:"lower_band"`
	Classification string  `json:"classification"` // BULLISH, BEARISH
}

// SuperTrend anchors ATR bands on the typical price; a close beyond a band
// flips the active side, otherwise the 24h direction decides.
func SuperTrend(snap *models.PriceSnapshot) SuperTrendResult {
	mid := typicalPrice(snap)
	atr := ATR(snap)
	upper := mid + 2*atr.Value
	lower := mid - 2*atr.Value

	bullish := snap.Change24h >= 0
	if snap.Price > upper {
		bullish = true
	} else if snap.Price < lower {
		bullish = false
	}

	res := SuperTrendResult{UpperBand: utils.Round4(upper), LowerBand: utils.Round4(lower)}
	if bullish {
		res.Value = utils.Round4(lower)
		res.Classification = "BULLISH"
	} else {
		res.Value = utils.Round4(upper)
		res.Classification = "BEARISH"
	}
	return res
}

// RegressionResult holds the least-squares fit over the derived series.
type RegressionResult struct {
	Slope          float64 `json:"slope"`
	Intercept      float64 `json:"intercept"`
	R2             float64 `json:"r2"`
	Classification string  `json:"classification"`
}

// LinearRegression fits the derived close series against its index. A
// single-point series has no slope and reports zero fit quality.
func LinearRegression(snap *models.PriceSnapshot) RegressionResult {
	closes := Closes(snap)
	n := len(closes)
	if n < 2 {
		return RegressionResult{Slope: 0, Intercept: utils.Round4(snap.Price), R2: 0, Classification: "FLAT"}
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	meanX := utils.Mean(xs)
	meanY := utils.Mean(closes)

	var ssXY, ssXX, ssYY float64
	for i := range closes {
		dx := xs[i] - meanX
		dy := closes[i] - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	slope := utils.SafeDiv(ssXY, ssXX, 0)
	intercept := meanY - slope*meanX
	r2 := 0.0
	if ssXX > 0 && ssYY > 0 {
		r := ssXY / math.Sqrt(ssXX*ssYY)
		r2 = r * r
	}

	slopePct := utils.SafeDiv(slope, snap.Price, 0) * 100
	var label string
	switch {
	case slopePct >= 2:
		label = "STRONG_RISING"
	case slopePct <= -2:
		label = "STRONG_FALLING"
	case slopePct >= 0.5:
		label = "RISING"
	case slopePct <= -0.5:
		label = "FALLING"
	default:
		label = "FLAT"
	}
	return RegressionResult{
		Slope:          utils.Round4(slope),
		Intercept:      utils.Round4(intercept),
		R2:             utils.Round4(utils.Clamp(r2, 0, 1)),
		Classification: label,
	}
}
