package strategy

import (
	"fmt"

	"coinsight/internal/indicators"
	"coinsight/internal/utils"
	"coinsight/models"
)

// BreakoutStrategy trades band-compression breakouts. It only activates on
// a detected Bollinger squeeze; contributions are squeeze intensity with
// direction (40%), Donchian position (30%), volume confirmation (20%) and
// ATR expansion (10%).
type BreakoutStrategy struct{}

func (BreakoutStrategy) Name() string { return "breakout" }

func (s BreakoutStrategy) Evaluate(snap *models.PriceSnapshot, set indicators.IndicatorSet) models.StrategySignal {
	bb := indicators.Bollinger(snap)
	if !bb.Squeeze {
		return models.StrategySignal{
			StrategyName: s.Name(),
			Signal:       models.SignalHold,
			Confidence:   ConfidenceFloor,
			Reasoning:    "no squeeze detected, breakout conditions absent",
			Metrics: map[string]float64{
				"bb_width": bb.Width,
			},
		}
	}

	dn := indicators.Donchian(snap)

	// Direction from the band breakout, falling back to the MACD trend.
	dir := 0.0
	switch bb.Breakout {
	case "UP":
		dir = 1
	case "DOWN":
		dir = -1
	default:
		dir = float64(trendDirection(set.MACD.Trend))
	}

	intensity := utils.Clamp((indicators.SqueezeWidth-bb.Width)/indicators.SqueezeWidth, 0, 1)
	donchian := utils.Clamp((dn.Position-0.5)*2, -1, 1)

	volConfirm := 0.0
	if set.VolumeROC.Value > 20 {
		volConfirm = dir
	}
	atrConfirm := 0.0
	if set.ATR.Normalized > 3 {
		atrConfirm = dir
	}

	score := 40*intensity*dir + 30*donchian + 20*volConfirm + 10*atrConfirm
	signal := mapScore(score, buyThreshold, strongThreshold)

	agreement := indicators.DirectionalAgreement(snap)
	conf := confidence(score, agreement, set.ADX.ADX, set.ATR.Normalized)

	reasons := []string{fmt.Sprintf("squeeze detected (width %.3f, intensity %.2f)", bb.Width, intensity)}
	if bb.Breakout != "NONE" {
		reasons = append(reasons, fmt.Sprintf("band breakout %s", bb.Breakout))
	}
	if donchian > 0.5 {
		reasons = append(reasons, "price pressing the Donchian upper band")
	} else if donchian < -0.5 {
		reasons = append(reasons, "price pressing the Donchian lower band")
	}
	if volConfirm != 0 {
		reasons = append(reasons, fmt.Sprintf("volume confirms (ROC %.0f%%)", set.VolumeROC.Value))
	}
	if atrConfirm != 0 {
		reasons = append(reasons, fmt.Sprintf("range expansion confirms (ATR %.1f%%)", set.ATR.Normalized))
	}

	return models.StrategySignal{
		StrategyName: s.Name(),
		Signal:       signal,
		Confidence:   conf,
		Reasoning:    joinReasons(reasons, "squeeze without direction"),
		Metrics: map[string]float64{
			"score":             utils.Round2(score),
			"squeeze_intensity": utils.Round4(intensity),
			"donchian_position": dn.Position,
			"volume_roc":        set.VolumeROC.Value,
			"atr_normalized":    set.ATR.Normalized,
		},
	}
}
