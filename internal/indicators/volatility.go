package indicators

import (
	"math"

	"coinsight/internal/utils"
	"coinsight/models"
)

// ATRResult holds the true-range estimate for one snapshot.
type ATRResult struct {
	Value          float64 `json:"value"`      // price units
	Normalized     float64 `json:"normalized"` // percent of price
	Classification string  `json:"classification"`
}

// ATR computes the true range of the 24h bar against the reconstructed
// open. Without a band it falls back to a price-proportional synthetic
// range derived from the 24h change.
func ATR(snap *models.PriceSnapshot) ATRResult {
	var tr float64
	if snap.HasRange() {
		prev := open24h(snap)
		hl := snap.High24h - snap.Low24h
		hc := math.Abs(snap.High24h - prev)
		lc := math.Abs(snap.Low24h - prev)
		tr = math.Max(hl, math.Max(hc, lc))
	} else {
		pct := math.Max(math.Abs(snap.Change24h), 1)
		tr = snap.Price * pct / 100
	}

	norm := utils.Round2(utils.SafeDiv(tr, snap.Price, 0) * 100)
	var label string
	switch {
	case norm > 10:
		label = "EXTREME"
	case norm > 5:
		label = "HIGH"
	case norm > 2:
		label = "MODERATE"
	default:
		label = "LOW"
	}
	return ATRResult{Value: utils.Round4(tr), Normalized: norm, Classification: label}
}

// BollingerResult holds the band estimate around the typical price.
type BollingerResult struct {
	Upper          float64 `json:"upper"`
	Middle         float64 `json:"middle"`
	Lower          float64 `json:"lower"`
	PercentB       float64 `json:"percent_b"` // unclamped, overshoots stay visible
	Width          float64 `json:"width"`
	Squeeze        bool    `json:"squeeze"`
	Breakout       string  `json:"breakout"` // UP, DOWN, NONE
	Classification string  `json:"classification"`
}

// SqueezeWidth is the bandwidth below which the bands count as squeezed.
const SqueezeWidth = 0.10

// Bollinger centers the bands on the typical price with the 24h range as
// the deviation proxy. A collapsed range substitutes a 2% synthetic band
// so the result is always a finite envelope.
func Bollinger(snap *models.PriceSnapshot) BollingerResult {
	mid := typicalPrice(snap)
	half := 0.0
	if snap.HasRange() {
		half = 1.5 * (snap.High24h - snap.Low24h)
	}
	if half <= 0 {
		half = 0.02 * mid
	}
	upper := mid + half
	lower := mid - half

	pb := utils.Round4(utils.SafeDiv(snap.Price-lower, upper-lower, 0.5))
	width := utils.Round4(utils.SafeDiv(upper-lower, mid, 0))

	breakout := "NONE"
	if snap.Price > upper {
		breakout = "UP"
	} else if snap.Price < lower {
		breakout = "DOWN"
	}

	var label string
	switch {
	case pb > 1.2:
		label = "EXTREME_OVERBOUGHT"
	case pb < -0.2:
		label = "EXTREME_OVERSOLD"
	case pb > 0.9:
		label = "UPPER_BAND"
	case pb < 0.1:
		label = "LOWER_BAND"
	default:
		label = "MID_RANGE"
	}
	return BollingerResult{
		Upper:          utils.Round4(upper),
		Middle:         utils.Round4(mid),
		Lower:          utils.Round4(lower),
		PercentB:       pb,
		Width:          width,
		Squeeze:        width < SqueezeWidth,
		Breakout:       breakout,
		Classification: label,
	}
}

// KeltnerResult holds the ATR-based channel estimate.
type KeltnerResult struct {
	Upper          float64 `json:"upper"`
	Middle         float64 `json:"middle"`
	Lower          float64 `json:"lower"`
	Width          float64 `json:"width"`
	Classification string  `json:"classification"`
}

// Keltner builds an ATR channel around the typical price.
func Keltner(snap *models.PriceSnapshot) KeltnerResult {
	mid := typicalPrice(snap)
	atr := ATR(snap)
	upper := mid + 1.5*atr.Value
	lower := mid - 1.5*atr.Value
	width := utils.Round4(utils.SafeDiv(upper-lower, mid, 0))

	var label string
	switch {
	case snap.Price > upper:
		label = "ABOVE_CHANNEL"
	case snap.Price < lower:
		label = "BELOW_CHANNEL"
	default:
		label = "IN_CHANNEL"
	}
	return KeltnerResult{
		Upper:          utils.Round4(upper),
		Middle:         utils.Round4(mid),
		Lower:          utils.Round4(lower),
		Width:          width,
		Classification: label,
	}
}

// DonchianResult holds the 24h channel and the price position inside it.
type DonchianResult struct {
	Upper          float64 `json:"upper"`
	Middle         float64 `json:"middle"`
	Lower          float64 `json:"lower"`
	Position       float64 `json:"position"` // unclamped band position
	Classification string  `json:"classification"`
}

// Donchian reads the 24h high/low as the channel. Without a band the
// channel degenerates to the price itself at the neutral mid position.
func Donchian(snap *models.PriceSnapshot) DonchianResult {
	upper, lower := snap.High24h, snap.Low24h
	if !snap.HasRange() {
		upper, lower = snap.Price, snap.Price
	}
	pos := pricePosition(snap)

	var label string
	switch {
	case pos >= 1:
		label = "BREAKOUT_UP"
	case pos <= 0:
		label = "BREAKOUT_DOWN"
	case pos >= 0.8:
		label = "UPPER_BAND"
	case pos <= 0.2:
		label = "LOWER_BAND"
	default:
		label = "MID_RANGE"
	}
	return DonchianResult{
		Upper:          utils.Round4(upper),
		Middle:         utils.Round4((upper + lower) / 2),
		Lower:          utils.Round4(lower),
		Position:       utils.Round4(pos),
		Classification: label,
	}
}

// VolatilityResult holds one annualized volatility estimate in percent.
type VolatilityResult struct {
	Value          float64 `json:"value"` // annualized percent
	Estimator      string  `json:"estimator"`
	Classification string  `json:"classification"`
}

const annualization = 365

func classifyVolatility(value float64) string {
	switch {
	case value > 150:
		return "EXTREME"
	case value > 80:
		return "HIGH"
	case value > 40:
		return "MODERATE"
	default:
		return "LOW"
	}
}

// HistoricalVolatility is the close-to-close estimator over the derived
// series, annualized. A degenerate series falls back to the absolute 24h
// change as the daily move.
func HistoricalVolatility(snap *models.PriceSnapshot) VolatilityResult {
	closes := Closes(snap)
	logRets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i] > 0 && closes[i-1] > 0 {
			logRets = append(logRets, math.Log(closes[i]/closes[i-1]))
		}
	}

	var daily float64
	if len(logRets) >= 2 {
		daily = utils.StdDev(logRets)
	} else {
		daily = math.Abs(snap.Change24h) / 100
	}
	value := utils.Round2(daily * math.Sqrt(annualization) * 100)
	return VolatilityResult{Value: value, Estimator: "close_to_close", Classification: classifyVolatility(value)}
}

// ParkinsonVolatility uses the 24h high/low range estimator, annualized.
func ParkinsonVolatility(snap *models.PriceSnapshot) VolatilityResult {
	var daily float64
	if snap.HasRange() && snap.Low24h > 0 && snap.High24h > snap.Low24h {
		hl := math.Log(snap.High24h / snap.Low24h)
		daily = math.Sqrt(hl * hl / (4 * math.Ln2))
	} else {
		daily = math.Abs(snap.Change24h) / 100
	}
	value := utils.Round2(daily * math.Sqrt(annualization) * 100)
	return VolatilityResult{Value: value, Estimator: "parkinson", Classification: classifyVolatility(value)}
}

// GarmanKlassVolatility combines the range and open-close terms of the 24h
// bar, annualized. A negative variance estimate (possible on degenerate
// bars) degrades to the Parkinson value.
func GarmanKlassVolatility(snap *models.PriceSnapshot) VolatilityResult {
	if !snap.HasRange() || snap.Low24h <= 0 {
		res := ParkinsonVolatility(snap)
		res.Estimator = "garman_klass"
		return res
	}
	open := open24h(snap)
	if open <= 0 {
		open = snap.Price
	}
	hl := math.Log(snap.High24h / snap.Low24h)
	co := math.Log(utils.SafeDiv(snap.Price, open, 1))
	variance := 0.5*hl*hl - (2*math.Ln2-1)*co*co
	if variance < 0 {
		res := ParkinsonVolatility(snap)
		res.Estimator = "garman_klass"
		return res
	}
	value := utils.Round2(math.Sqrt(variance) * math.Sqrt(annualization) * 100)
	return VolatilityResult{Value: value, Estimator: "garman_klass", Classification: classifyVolatility(value)}
}

// ZScoreResult holds the standardized distance from the series mean.
type ZScoreResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// ZScore standardizes the price against the derived series; zero spread
// yields the neutral 0.
func ZScore(snap *models.PriceSnapshot) ZScoreResult {
	closes := Closes(snap)
	sd := utils.StdDev(closes)
	value := utils.Round2(utils.SafeDiv(snap.Price-utils.Mean(closes), sd, 0))

	var label string
	switch {
	case math.Abs(value) >= 2:
		label = "EXTREME"
	case math.Abs(value) >= 1:
		label = "STRETCHED"
	default:
		label = "NORMAL"
	}
	return ZScoreResult{Value: value, Classification: label}
}

// DrawdownResult holds the percent distance below the reference high.
type DrawdownResult struct {
	Value          float64 `json:"value"` // percent, >= 0
	Reference      string  `json:"reference"`
	Classification string  `json:"classification"`
}

// Drawdown measures the distance below ATH, or below the 24h high when no
// ATH is known.
func Drawdown(snap *models.PriceSnapshot) DrawdownResult {
	ref := snap.ATH
	refName := "ath"
	if ref <= 0 {
		ref = snap.High24h
		refName = "high_24h"
	}
	if ref <= 0 {
		ref = snap.Price
		refName = "price"
	}
	value := utils.Round2(utils.Clamp(utils.SafeDiv(ref-snap.Price, ref, 0)*100, 0, 100))

	var label string
	switch {
	case value >= 80:
		label = "EXTREME"
	case value >= 50:
		label = "DEEP"
	case value >= 20:
		label = "MODERATE"
	default:
		label = "SHALLOW"
	}
	return DrawdownResult{Value: value, Reference: refName, Classification: label}
}
