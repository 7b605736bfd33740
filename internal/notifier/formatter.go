package notifier

import (
	"fmt"
	"strings"

	"coinsight/models"
)

// FormatAnalysisReport formats a strategy result into a Telegram message.
func FormatAnalysisReport(result *models.StrategyResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", strings.ToUpper(result.Symbol), result.Timestamp.Format("2006-01-02 15:04 MST")))
	b.WriteString(fmt.Sprintf("Regime: %s\n", result.Regime))
	b.WriteString(fmt.Sprintf("Signal: <b>%s</b> (confidence %.0f%%)\n", result.PrimarySignal, result.OverallConfidence))
	b.WriteString(fmt.Sprintf("Risk score: %.0f/100\n", result.RiskScore))

	if len(result.Signals) > 0 {
		b.WriteString("\n<b>Strategy votes:</b>\n")
		for _, s := range result.Signals {
			b.WriteString(fmt.Sprintf("  %s: %s (%.0f%%)\n", s.StrategyName, s.Signal, s.Confidence))
		}
	}

	if result.Reasoning != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", result.Reasoning))
	}

	return b.String()
}

// FormatCrashAlert formats a triggered crash signal into a Telegram message.
func FormatCrashAlert(sig *models.CrashSignal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🚨 <b>CRASH ALERT: %s</b>\n\n", strings.ToUpper(sig.Symbol)))
	b.WriteString(fmt.Sprintf("Severity: <b>%s</b> (confidence %.0f%%)\n\n", sig.Severity, sig.Confidence))

	b.WriteString(fmt.Sprintf("  Rapid drop: %s\n", checkMark(sig.Indicators.RapidDrop)))
	b.WriteString(fmt.Sprintf("  Volume spike: %s\n", checkMark(sig.Indicators.VolumeSpike)))
	b.WriteString(fmt.Sprintf("  Oversold RSI: %s\n", checkMark(sig.Indicators.OversoldRSI)))
	b.WriteString(fmt.Sprintf("  High volatility: %s\n", checkMark(sig.Indicators.HighVolatility)))

	b.WriteString(fmt.Sprintf("\n%s\n", sig.Recommendation))
	return b.String()
}

// FormatEntryAlert formats a triggered bull entry signal into a Telegram message.
func FormatEntryAlert(sig *models.EntrySignal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🟢 <b>BULL ENTRY: %s</b>\n\n", strings.ToUpper(sig.Symbol)))
	b.WriteString(fmt.Sprintf("Strength: <b>%s</b> (confidence %.0f%%)\n\n", sig.Strength, sig.Confidence))

	b.WriteString(fmt.Sprintf("  Bullish MACD: %s\n", checkMark(sig.Indicators.BullishMACD)))
	b.WriteString(fmt.Sprintf("  Volume increase: %s\n", checkMark(sig.Indicators.VolumeIncrease)))
	b.WriteString(fmt.Sprintf("  Trend confirmation: %s\n", checkMark(sig.Indicators.TrendConfirmation)))
	b.WriteString(fmt.Sprintf("  Bullish divergence: %s\n", checkMark(sig.Indicators.BullishDivergence)))

	b.WriteString(fmt.Sprintf("\n%s\n", sig.Recommendation))
	return b.String()
}

func checkMark(v bool) string {
	if v {
		return "✅"
	}
	return "✖"
}
