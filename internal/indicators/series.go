package indicators

import (
	"coinsight/models"
)

// Closes synthesizes a degenerate close series from a single snapshot.
// Ordering is [open24h, low, high, price] so the series ends at the current
// price and carries the 24h direction; open24h is reconstructed from the
// 24h change. Points whose inputs are missing are dropped, and the result
// is never shorter than [price].
func Closes(snap *models.PriceSnapshot) []float64 {
	closes := make([]float64, 0, 4)
	if open := open24h(snap); open > 0 && open != snap.Price {
		closes = append(closes, open)
	}
	if snap.HasRange() {
		closes = append(closes, snap.Low24h, snap.High24h)
	}
	closes = append(closes, snap.Price)
	return closes
}

// open24h reconstructs the price 24 hours ago from the percent change.
func open24h(snap *models.PriceSnapshot) float64 {
	denom := 1 + snap.Change24h/100
	if denom <= 0 {
		return snap.Price
	}
	return snap.Price / denom
}

// pricePosition places the current price inside the 24h band on [0,1]
// scale, unclamped so band overshoots remain visible. Without a band the
// position is the neutral 0.5.
func pricePosition(snap *models.PriceSnapshot) float64 {
	if !snap.HasRange() || snap.High24h == snap.Low24h {
		return 0.5
	}
	return (snap.Price - snap.Low24h) / (snap.High24h - snap.Low24h)
}

// typicalPrice is the HLC pivot of the snapshot, falling back to the last
// price when the band is missing.
func typicalPrice(snap *models.PriceSnapshot) float64 {
	if !snap.HasRange() {
		return snap.Price
	}
	return (snap.High24h + snap.Low24h + snap.Price) / 3
}

// returnsOf converts a close series to simple period returns.
func returnsOf(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			rets = append(rets, 0)
			continue
		}
		rets = append(rets, (closes[i]-closes[i-1])/closes[i-1])
	}
	return rets
}
