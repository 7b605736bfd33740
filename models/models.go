package models

import (
	"time"
)

// PriceSnapshot is one point-in-time read of an asset's market stats.
// It is produced by the data source once per cycle and is read-only to
// every downstream computation.
type PriceSnapshot struct {
	Symbol       string    `json:"symbol"`
	Price        float64   `json:"price"`
	High24h      float64   `json:"high_24h,omitempty"`
	Low24h       float64   `json:"low_24h,omitempty"`
	Volume24h    float64   `json:"volume_24h,omitempty"`
	MarketCap    float64   `json:"market_cap,omitempty"`
	Change24h    float64   `json:"change_24h"` // percent
	ATH          float64   `json:"ath,omitempty"`
	ATL          float64   `json:"atl,omitempty"`
	ATHChangePct float64   `json:"ath_change_pct,omitempty"` // % distance from ATH, negative below it
	ATLChangePct float64   `json:"atl_change_pct,omitempty"` // % distance above ATL
	Timestamp    time.Time `json:"timestamp"`
}

// HasRange reports whether the snapshot carries a usable 24h high/low band.
func (s *PriceSnapshot) HasRange() bool {
	return s.High24h > 0 && s.Low24h > 0 && s.High24h >= s.Low24h
}

// Signal is the discrete recommendation attached to a strategy opinion or
// the combined decision.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)

// MarketRegime is a discrete label summarizing trend/volatility character.
// Derived per snapshot, never stored.
type MarketRegime string

const (
	RegimeBullMarket     MarketRegime = "BULL_MARKET"
	RegimeBearMarket     MarketRegime = "BEAR_MARKET"
	RegimeSideways       MarketRegime = "SIDEWAYS"
	RegimeHighVolatility MarketRegime = "HIGH_VOLATILITY"
	RegimeLowVolatility  MarketRegime = "LOW_VOLATILITY"
	RegimeMeanReversion  MarketRegime = "MEAN_REVERSION"
	RegimeTrending       MarketRegime = "TRENDING"
)

// StrategySignal is one strategy's opinion on a snapshot.
type StrategySignal struct {
	StrategyName string             `json:"strategy_name"`
	Signal       Signal             `json:"signal"`
	Confidence   float64            `json:"confidence"` // 0-100
	Reasoning    string             `json:"reasoning"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// StrategyResult is the terminal artifact of one analysis pass.
type StrategyResult struct {
	Symbol            string             `json:"symbol"`
	Regime            MarketRegime       `json:"regime"`
	Signals           []StrategySignal   `json:"signals"`
	PrimarySignal     Signal             `json:"primary_signal"`
	OverallConfidence float64            `json:"overall_confidence"` // 0-100
	RiskScore         float64            `json:"risk_score"`         // clamped, see strategy.RiskFloor/RiskCeil
	Reasoning         string             `json:"reasoning"`          // per-strategy reasons, "name: reason | ..."
	Metrics           map[string]float64 `json:"metrics,omitempty"`  // flattened under {strategy}_{key}
	Timestamp         time.Time          `json:"timestamp"`
}

// CrashSeverity grades a crash signal by its true-indicator count.
type CrashSeverity string

const (
	CrashSeverityLow     CrashSeverity = "LOW"
	CrashSeverityMedium  CrashSeverity = "MEDIUM"
	CrashSeverityHigh    CrashSeverity = "HIGH"
	CrashSeverityExtreme CrashSeverity = "EXTREME"
)

// CrashIndicators is the fixed boolean bundle the crash detector evaluates.
type CrashIndicators struct {
	RapidDrop      bool `json:"rapid_drop"`      // 24h change below -15%
	VolumeSpike    bool `json:"volume_spike"`    // volume ROC above +100%
	OversoldRSI    bool `json:"oversold_rsi"`    // RSI below 20
	HighVolatility bool `json:"high_volatility"` // normalized ATR above 10
}

// CrashSignal is the crash detector's terminal artifact.
type CrashSignal struct {
	Symbol         string          `json:"symbol"`
	IsCrashing     bool            `json:"is_crashing"`
	Severity       CrashSeverity   `json:"severity"`
	Indicators     CrashIndicators `json:"indicators"`
	Confidence     float64         `json:"confidence"` // 0-100
	Recommendation string          `json:"recommendation"`
	Timestamp      time.Time       `json:"timestamp"`
}

// EntryStrength grades a bull-entry signal by its true-indicator count.
type EntryStrength string

const (
	EntryStrengthWeak       EntryStrength = "WEAK"
	EntryStrengthModerate   EntryStrength = "MODERATE"
	EntryStrengthStrong     EntryStrength = "STRONG"
	EntryStrengthVeryStrong EntryStrength = "VERY_STRONG"
)

// EntryIndicators is the fixed boolean bundle the bull-entry detector evaluates.
type EntryIndicators struct {
	BullishMACD       bool `json:"bullish_macd"`       // MACD bullish with RSI in [40,70]
	VolumeIncrease    bool `json:"volume_increase"`    // volume ROC above +20%
	TrendConfirmation bool `json:"trend_confirmation"` // ADX above 25 with positive 24h change
	BullishDivergence bool `json:"bullish_divergence"` // bullish RSI divergence
}

// EntrySignal is the bull-entry detector's terminal artifact.
type EntrySignal struct {
	Symbol         string          `json:"symbol"`
	IsEntry        bool            `json:"is_entry"`
	Strength       EntryStrength   `json:"strength"`
	Indicators     EntryIndicators `json:"indicators"`
	Confidence     float64         `json:"confidence"` // 0-100
	Recommendation string          `json:"recommendation"`
	Timestamp      time.Time       `json:"timestamp"`
}
