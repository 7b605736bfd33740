package indicators

import (
	"coinsight/internal/utils"
	"coinsight/models"
)

// RSIResult holds the snapshot-estimated Relative Strength Index.
type RSIResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// RSI estimates the Relative Strength Index from the 24h change and the
// position of the price inside the 24h band. The estimate is clamped to
// [10,90]: a single snapshot never justifies a saturated reading.
func RSI(snap *models.PriceSnapshot) RSIResult {
	pos := utils.Clamp(pricePosition(snap), 0, 1)
	raw := 50 + 2*snap.Change24h + 80*(pos-0.5)
	value := utils.Round2(utils.Clamp(raw, 10, 90))

	// Most extreme bands first so overlapping ranges never tie.
	var label string
	switch {
	case value >= 85:
		label = "EXTREME_OVERBOUGHT"
	case value <= 15:
		label = "EXTREME_OVERSOLD"
	case value >= 70:
		label = "OVERBOUGHT"
	case value <= 30:
		label = "OVERSOLD"
	default:
		label = "NEUTRAL"
	}
	return RSIResult{Value: value, Classification: label}
}

// DivergenceResult describes the divergence between RSI and the price's
// position inside its all-time range.
type DivergenceResult struct {
	Score          float64 `json:"score"`    // rsi/100 minus all-time position
	Strength       float64 `json:"strength"` // 0-1
	Classification string  `json:"classification"`
}

// RSIDivergence compares momentum (RSI) against where the price sits
// between ATL and ATH. RSI running well ahead of a depressed all-time
// position is bullish divergence; the mirror case is bearish. Missing
// ATH/ATL degrades to the neutral mid position.
func RSIDivergence(snap *models.PriceSnapshot, rsi RSIResult) DivergenceResult {
	athPos := 0.5
	if snap.ATH > snap.ATL && snap.ATL >= 0 && snap.ATH > 0 {
		athPos = utils.Clamp((snap.Price-snap.ATL)/(snap.ATH-snap.ATL), 0, 1)
	}
	score := utils.Round4(rsi.Value/100 - athPos)

	var label string
	switch {
	case score > 0.15:
		label = "BULLISH"
	case score < -0.15:
		label = "BEARISH"
	default:
		label = "NONE"
	}
	strength := utils.Round2(utils.Clamp(absFloat(score)/0.5, 0, 1))
	return DivergenceResult{Score: score, Strength: strength, Classification: label}
}

// StochasticResult holds the %K/%D pair estimated from the 24h band.
type StochasticResult struct {
	K              float64 `json:"k"`
	D              float64 `json:"d"`
	Crossover      string  `json:"crossover"` // BULLISH, BEARISH, NONE
	Classification string  `json:"classification"`
}

// Stochastic places the price in the 24h band as %K and smooths %D toward
// the change-adjusted center. %K saturating at 0 or 100 marks the reading
// as band-pinned; consumers fall back to RSI in that case.
func Stochastic(snap *models.PriceSnapshot) StochasticResult {
	k := utils.Round2(utils.Clamp(pricePosition(snap)*100, 0, 100))
	d := utils.Round2(utils.Clamp(0.6*k+0.4*(50+snap.Change24h), 0, 100))

	crossover := "NONE"
	if k > d {
		crossover = "BULLISH"
	} else if k < d {
		crossover = "BEARISH"
	}

	var label string
	switch {
	case k >= 80:
		label = "OVERBOUGHT"
	case k <= 20:
		label = "OVERSOLD"
	default:
		label = "NEUTRAL"
	}
	return StochasticResult{K: k, D: d, Crossover: crossover, Classification: label}
}

// Saturated reports whether %K is pinned to a band edge, where the
// degenerate series carries no usable stochastic information.
func (s StochasticResult) Saturated() bool {
	return s.K <= 0 || s.K >= 100
}

// WilliamsRResult holds the Williams %R reading.
type WilliamsRResult struct {
	Value          float64 `json:"value"` // -100..0
	Classification string  `json:"classification"`
}

// WilliamsR measures how far below the 24h high the price trades.
// A missing band yields the neutral -50.
func WilliamsR(snap *models.PriceSnapshot) WilliamsRResult {
	value := -50.0
	if snap.HasRange() && snap.High24h != snap.Low24h {
		value = -100 * (snap.High24h - snap.Price) / (snap.High24h - snap.Low24h)
	}
	value = utils.Round2(utils.Clamp(value, -100, 0))

	var label string
	switch {
	case value >= -20:
		label = "OVERBOUGHT"
	case value <= -80:
		label = "OVERSOLD"
	default:
		label = "NEUTRAL"
	}
	return WilliamsRResult{Value: value, Classification: label}
}

// ROCResult holds the Rate of Change reading.
type ROCResult struct {
	Value          float64 `json:"value"` // percent
	Classification string  `json:"classification"`
}

// ROC measures the percent change from the start of the derived series,
// which for a snapshot collapses to the 24h change.
func ROC(snap *models.PriceSnapshot) ROCResult {
	closes := Closes(snap)
	value := utils.Round2(utils.SafeDiv(snap.Price-closes[0], closes[0], 0) * 100)

	var label string
	switch {
	case value >= 10:
		label = "STRONG_BULLISH"
	case value <= -10:
		label = "STRONG_BEARISH"
	case value >= 3:
		label = "BULLISH"
	case value <= -3:
		label = "BEARISH"
	default:
		label = "FLAT"
	}
	return ROCResult{Value: value, Classification: label}
}

// MomentumResult holds the raw price momentum reading.
type MomentumResult struct {
	Value          float64 `json:"value"` // price units
	Pct            float64 `json:"pct"`   // percent of price
	Classification string  `json:"classification"`
}

// Momentum is the raw price distance covered since the start of the
// derived series.
func Momentum(snap *models.PriceSnapshot) MomentumResult {
	closes := Closes(snap)
	value := utils.Round4(snap.Price - closes[0])
	pct := utils.Round2(utils.SafeDiv(value, snap.Price, 0) * 100)

	var label string
	switch {
	case pct >= 5:
		label = "STRONG_POSITIVE"
	case pct <= -5:
		label = "STRONG_NEGATIVE"
	case pct > 0:
		label = "POSITIVE"
	case pct < 0:
		label = "NEGATIVE"
	default:
		label = "FLAT"
	}
	return MomentumResult{Value: value, Pct: pct, Classification: label}
}

// MFIResult holds the volume-weighted Money Flow Index estimate.
type MFIResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// MFI scales the 24h change by turnover intensity: heavy volume behind a
// move pushes the flow reading further from center. Missing volume or
// market cap degrades to plain change weighting.
func MFI(snap *models.PriceSnapshot) MFIResult {
	intensity := 1.0
	if snap.MarketCap > 0 && snap.Volume24h > 0 {
		turnover := snap.Volume24h / snap.MarketCap * 100
		intensity = utils.Clamp(turnover/5.0, 0.5, 2)
	}
	value := utils.Round2(utils.Clamp(50+snap.Change24h*intensity, 0, 100))

	var label string
	switch {
	case value >= 80:
		label = "OVERBOUGHT"
	case value <= 20:
		label = "OVERSOLD"
	default:
		label = "NEUTRAL"
	}
	return MFIResult{Value: value, Classification: label}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
