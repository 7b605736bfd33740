package detect

import (
	"time"

	"coinsight/internal/indicators"
	"coinsight/models"
)

// Crash trigger thresholds. All four checks read the shared indicator set
// plus the snapshot; severity is purely a function of the true count.
const (
	crashDropPct      = -15.0
	crashVolumeROC    = 100.0
	crashRSI          = 20.0
	crashNormATR      = 10.0
	detectorThreshold = 2 // booleans required before a detector triggers
)

// Crash evaluates the four fixed crash conditions against one snapshot.
func Crash(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.CrashSignal {
	ind := models.CrashIndicators{
		RapidDrop:      snap.Change24h < crashDropPct,
		VolumeSpike:    set.VolumeROC.Value > crashVolumeROC,
		OversoldRSI:    set.RSI.Value < crashRSI,
		HighVolatility: set.ATR.Normalized > crashNormATR,
	}
	count := boolCount(ind.RapidDrop, ind.VolumeSpike, ind.OversoldRSI, ind.HighVolatility)

	sig := models.CrashSignal{
		Symbol:     snap.Symbol,
		IsCrashing: count >= detectorThreshold,
		Severity:   crashSeverity(count),
		Indicators: ind,
		Confidence: float64(count) * 25,
		Timestamp:  timestamp(snap),
	}
	sig.Recommendation = crashRecommendation(sig.Severity, sig.IsCrashing)
	return sig
}

// crashSeverity maps the true count to a tier; more true indicators never
// yield a lower tier.
func crashSeverity(count int) models.CrashSeverity {
	switch {
	case count >= 4:
		return models.CrashSeverityExtreme
	case count == 3:
		return models.CrashSeverityHigh
	case count == 2:
		return models.CrashSeverityMedium
	default:
		return models.CrashSeverityLow
	}
}

func crashRecommendation(severity models.CrashSeverity, crashing bool) string {
	if !crashing {
		return "No crash conditions met. Normal market behavior."
	}
	switch severity {
	case models.CrashSeverityExtreme:
		return "Extreme crash conditions. Exit leveraged positions and avoid catching the falling knife."
	case models.CrashSeverityHigh:
		return "High crash risk. Reduce exposure and tighten stops."
	default:
		return "Elevated crash risk. Monitor closely and avoid adding exposure."
	}
}

func boolCount(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func timestamp(snap *models.PriceSnapshot) time.Time {
	if snap.Timestamp.IsZero() {
		return time.Now().UTC()
	}
	return snap.Timestamp
}
