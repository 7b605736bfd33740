package detect

import (
	"coinsight/internal/indicators"
	"coinsight/models"
)

// Bull-entry trigger thresholds.
const (
	entryRSIFloor  = 40.0
	entryRSICeil   = 70.0
	entryVolumeROC = 20.0
	entryADX       = 25.0
)

// BullEntry evaluates the four fixed entry conditions against one
// snapshot.
func BullEntry(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.EntrySignal {
	ind := models.EntryIndicators{
		BullishMACD:       set.MACD.Trend == "BULLISH" && set.RSI.Value >= entryRSIFloor && set.RSI.Value <= entryRSICeil,
		VolumeIncrease:    set.VolumeROC.Value > entryVolumeROC,
		TrendConfirmation: set.ADX.ADX > entryADX && snap.Change24h > 0,
		BullishDivergence: set.Divergence.Classification == "BULLISH",
	}
	count := boolCount(ind.BullishMACD, ind.VolumeIncrease, ind.TrendConfirmation, ind.BullishDivergence)

	sig := models.EntrySignal{
		Symbol:     snap.Symbol,
		IsEntry:    count >= detectorThreshold,
		Strength:   entryStrength(count),
		Indicators: ind,
		Confidence: float64(count) * 25,
		Timestamp:  timestamp(snap),
	}
	sig.Recommendation = entryRecommendation(sig.Strength, sig.IsEntry)
	return sig
}

// entryStrength maps the true count to a tier; monotonic in the count.
func entryStrength(count int) models.EntryStrength {
	switch {
	case count >= 4:
		return models.EntryStrengthVeryStrong
	case count == 3:
		return models.EntryStrengthStrong
	case count == 2:
		return models.EntryStrengthModerate
	default:
		return models.EntryStrengthWeak
	}
}

func entryRecommendation(strength models.EntryStrength, entry bool) string {
	if !entry {
		return "Entry conditions not met. Stay patient."
	}
	switch strength {
	case models.EntryStrengthVeryStrong:
		return "Very strong entry setup. Momentum, volume, trend and divergence all align."
	case models.EntryStrengthStrong:
		return "Strong entry setup. Consider scaling in with a defined stop."
	default:
		return "Moderate entry setup. A partial position with confirmation is reasonable."
	}
}
