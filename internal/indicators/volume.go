package indicators

import (
	"coinsight/internal/utils"
	"coinsight/models"
)

// baselineTurnover is the daily volume/market-cap percentage treated as
// normal trading activity for a large-cap asset.
const baselineTurnover = 5.0

// VolumeROCResult holds the turnover-based volume rate of change.
type VolumeROCResult struct {
	Value          float64 `json:"value"`    // percent vs baseline turnover
	Turnover       float64 `json:"turnover"` // volume / market cap, percent
	Classification string  `json:"classification"`
}

// VolumeROC compares the snapshot's turnover (24h volume relative to
// market cap) against the baseline. Missing volume or market cap reads as
// the neutral 0.
func VolumeROC(snap *models.PriceSnapshot) VolumeROCResult {
	if snap.Volume24h <= 0 || snap.MarketCap <= 0 {
		return VolumeROCResult{Value: 0, Turnover: 0, Classification: "NO_DATA"}
	}
	turnover := snap.Volume24h / snap.MarketCap * 100
	value := utils.Round2((turnover - baselineTurnover) / baselineTurnover * 100)

	var label string
	switch {
	case value > 100:
		label = "SPIKE"
	case value > 20:
		label = "RISING"
	case value < -50:
		label = "DRYING_UP"
	default:
		label = "NORMAL"
	}
	return VolumeROCResult{Value: value, Turnover: utils.Round4(turnover), Classification: label}
}

// OBVResult holds the directional volume estimate.
type OBVResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"` // ACCUMULATION, DISTRIBUTION, FLAT
}

// OBV degenerates to the 24h volume signed by the 24h direction.
func OBV(snap *models.PriceSnapshot) OBVResult {
	var value float64
	label := "FLAT"
	if snap.Change24h > 0 {
		value = snap.Volume24h
		label = "ACCUMULATION"
	} else if snap.Change24h < 0 {
		value = -snap.Volume24h
		label = "DISTRIBUTION"
	}
	if snap.Volume24h <= 0 {
		return OBVResult{Value: 0, Classification: "FLAT"}
	}
	return OBVResult{Value: utils.Round2(value), Classification: label}
}

// VWAPResult holds the volume-weighted price estimate and the price's
// deviation from it.
type VWAPResult struct {
	Value          float64 `json:"value"`
	DeviationPct   float64 `json:"deviation_pct"`
	Classification string  `json:"classification"` // ABOVE, BELOW, AT
}

// VWAP degenerates to the typical price of the 24h bar.
func VWAP(snap *models.PriceSnapshot) VWAPResult {
	vwap := typicalPrice(snap)
	dev := utils.Round2(utils.SafeDiv(snap.Price-vwap, vwap, 0) * 100)

	label := "AT"
	if dev > 0.5 {
		label = "ABOVE"
	} else if dev < -0.5 {
		label = "BELOW"
	}
	return VWAPResult{Value: utils.Round4(vwap), DeviationPct: dev, Classification: label}
}

// CMFResult holds the Chaikin Money Flow multiplier.
type CMFResult struct {
	Value          float64 `json:"value"` // -1..1
	Classification string  `json:"classification"`
}

// ChaikinMoneyFlow reduces to the close-location multiplier of the 24h
// bar: where inside the range the period closed. A collapsed range reads
// as the neutral 0.
func ChaikinMoneyFlow(snap *models.PriceSnapshot) CMFResult {
	value := 0.0
	if snap.HasRange() && snap.High24h > snap.Low24h {
		value = ((snap.Price - snap.Low24h) - (snap.High24h - snap.Price)) / (snap.High24h - snap.Low24h)
	}
	value = utils.Round4(utils.Clamp(value, -1, 1))

	var label string
	switch {
	case value > 0.25:
		label = "STRONG_INFLOW"
	case value < -0.25:
		label = "STRONG_OUTFLOW"
	case value > 0.05:
		label = "INFLOW"
	case value < -0.05:
		label = "OUTFLOW"
	default:
		label = "BALANCED"
	}
	return CMFResult{Value: value, Classification: label}
}

// ADLineResult holds the accumulation/distribution estimate.
type ADLineResult struct {
	Value          float64 `json:"value"`
	Classification string  `json:"classification"` // ACCUMULATION, DISTRIBUTION, NEUTRAL
}

// ADLine scales the close-location multiplier by the 24h volume.
func ADLine(snap *models.PriceSnapshot) ADLineResult {
	mult := ChaikinMoneyFlow(snap).Value
	value := utils.Round2(mult * snap.Volume24h)

	label := "NEUTRAL"
	if value > 0 {
		label = "ACCUMULATION"
	} else if value < 0 {
		label = "DISTRIBUTION"
	}
	return ADLineResult{Value: value, Classification: label}
}
