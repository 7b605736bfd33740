package indicators

import (
	"sync"

	"coinsight/models"
)

// IndicatorSet is the core bundle computed once per snapshot and shared by
// the regime classifier, the strategies and the detectors.
type IndicatorSet struct {
	RSI        RSIResult        `json:"rsi"`
	Divergence DivergenceResult `json:"divergence"`
	MACD       MACDResult       `json:"macd"`
	ADX        ADXResult        `json:"adx"`
	ATR        ATRResult        `json:"atr"`
	VolumeROC  VolumeROCResult  `json:"volume_roc"`
	Drawdown   DrawdownResult   `json:"drawdown"`
}

// Compute evaluates the core indicators for one snapshot. The
// computations are independent and side-effect free, so they fan out in
// parallel; the call itself is total and never fails.
func Compute(snap *models.PriceSnapshot) IndicatorSet {
	var set IndicatorSet
	var wg sync.WaitGroup

	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		set.RSI = RSI(snap)
		set.Divergence = RSIDivergence(snap, set.RSI)
	})
	run(func() { set.MACD = MACD(snap) })
	run(func() { set.ADX = ADX(snap) })
	run(func() { set.ATR = ATR(snap) })
	run(func() { set.VolumeROC = VolumeROC(snap) })
	run(func() { set.Drawdown = Drawdown(snap) })

	wg.Wait()
	return set
}
