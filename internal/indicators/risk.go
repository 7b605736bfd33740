package indicators

import (
	"math"

	"coinsight/internal/utils"
	"coinsight/models"
)

// RatioResult holds one risk-adjusted-return ratio.
type RatioResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"`
}

// ratio values are clamped so degenerate one-bar series cannot claim
// unbounded risk-adjusted performance.
const ratioBound = 10.0

func classifyRatio(value float64) string {
	switch {
	case value > 2:
		return "EXCELLENT"
	case value > 1:
		return "GOOD"
	case value > 0:
		return "POSITIVE"
	case value == 0:
		return "NEUTRAL"
	default:
		return "NEGATIVE"
	}
}

// Sharpe estimates return per unit of total volatility over the derived
// series (risk-free rate taken as zero). Zero spread reads as neutral.
func Sharpe(snap *models.PriceSnapshot) RatioResult {
	rets := returnsOf(Closes(snap))
	value := utils.SafeDiv(utils.Mean(rets), utils.StdDev(rets), 0) * math.Sqrt(annualization)
	value = utils.Round2(utils.Clamp(value, -ratioBound, ratioBound))
	return RatioResult{Value: value, Classification: classifyRatio(value)}
}

// Sortino estimates return per unit of downside volatility. With no
// losing periods in the series the downside is zero and the ratio reads
// as the Sharpe value (no extra downside information available).
func Sortino(snap *models.PriceSnapshot) RatioResult {
	rets := returnsOf(Closes(snap))
	var downside []float64
	for _, r := range rets {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) == 0 {
		res := Sharpe(snap)
		return RatioResult{Value: res.Value, Classification: res.Classification}
	}
	var sumSq float64
	for _, r := range downside {
		sumSq += r * r
	}
	downDev := math.Sqrt(sumSq / float64(len(downside)))
	value := utils.SafeDiv(utils.Mean(rets), downDev, 0) * math.Sqrt(annualization)
	value = utils.Round2(utils.Clamp(value, -ratioBound, ratioBound))
	return RatioResult{Value: value, Classification: classifyRatio(value)}
}

// Calmar relates the 24h return to the drawdown from the reference high.
// No drawdown reads as neutral.
func Calmar(snap *models.PriceSnapshot) RatioResult {
	dd := Drawdown(snap)
	value := utils.Round2(utils.Clamp(utils.SafeDiv(snap.Change24h, dd.Value, 0), -ratioBound, ratioBound))
	return RatioResult{Value: value, Classification: classifyRatio(value)}
}

// VaR estimates the 95% one-day value at risk as a positive loss percent
// (parametric, normal approximation over the derived series).
func VaR(snap *models.PriceSnapshot) RatioResult {
	rets := returnsOf(Closes(snap))
	mean := utils.Mean(rets)
	sd := utils.StdDev(rets)
	if sd == 0 {
		sd = math.Abs(snap.Change24h) / 100
	}
	value := utils.Round2(utils.Clamp(-(mean-1.645*sd)*100, 0, 100))

	var label string
	switch {
	case value > 15:
		label = "SEVERE"
	case value > 8:
		label = "ELEVATED"
	case value > 3:
		label = "MODERATE"
	default:
		label = "LOW"
	}
	return RatioResult{Value: value, Classification: label}
}

// CVaR estimates the expected shortfall beyond the 95% VaR (normal tail
// expectation, 2.063 standard deviations).
func CVaR(snap *models.PriceSnapshot) RatioResult {
	rets := returnsOf(Closes(snap))
	mean := utils.Mean(rets)
	sd := utils.StdDev(rets)
	if sd == 0 {
		sd = math.Abs(snap.Change24h) / 100
	}
	value := utils.Round2(utils.Clamp(-(mean-2.063*sd)*100, 0, 100))

	var label string
	switch {
	case value > 20:
		label = "SEVERE"
	case value > 10:
		label = "ELEVATED"
	case value > 4:
		label = "MODERATE"
	default:
		label = "LOW"
	}
	return RatioResult{Value: value, Classification: label}
}

// marketVolatility is the annualized volatility treated as the crypto
// market baseline for the beta estimate.
const marketVolatility = 60.0

// Beta relates the asset's estimated volatility to the market baseline.
// With no market series in a single snapshot this is a volatility-relative
// proxy, defaulting to the market-like 1.
func Beta(snap *models.PriceSnapshot) RatioResult {
	vol := HistoricalVolatility(snap)
	value := utils.Round2(utils.Clamp(utils.SafeDiv(vol.Value, marketVolatility, 1), 0, 5))

	var label string
	switch {
	case value > 1.5:
		label = "AGGRESSIVE"
	case value < 0.8:
		label = "DEFENSIVE"
	default:
		label = "MARKET_LIKE"
	}
	return RatioResult{Value: value, Classification: label}
}
