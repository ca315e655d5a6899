package ta

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"

	"sui-signal-bot/internal/types"
)

// Params controls the indicator windows used to derive conditions.
type Params struct {
	FastEMA         int
	SlowEMA         int
	TrendEMA        int
	RSIPeriod       int
	VolumeWindow    int
	HighVolumeRatio float64
	Oversold        float64
	Overbought      float64
}

func DefaultParams() Params {
	return Params{
		FastEMA:         20,
		SlowEMA:         50,
		TrendEMA:        200,
		RSIPeriod:       14,
		VolumeWindow:    20,
		HighVolumeRatio: 1.5,
		Oversold:        30,
		Overbought:      70,
	}
}

// Conditions derives the boolean flags for the most recent bar. Series
// shorter than an indicator's warm-up leave the affected flags false rather
// than failing.
func Conditions(candles []types.Candle, p Params) types.TechnicalConditions {
	var cond types.TechnicalConditions
	if len(candles) == 0 {
		return cond
	}

	closes := make([]float64, len(candles))
	vols := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		vols[i] = c.Vol
	}
	lastClose := closes[len(closes)-1]

	if rs := rsiSeries(closes, p.RSIPeriod); len(rs) > 0 {
		r := rs[len(rs)-1]
		cond.RSI = r
		cond.RSIOversold = r < p.Oversold
		cond.RSIOverbought = r > p.Overbought
	}

	fast := emaSeries(closes, p.FastEMA)
	slow := emaSeries(closes, p.SlowEMA)
	cond.GoldenCross, cond.DeathCross = crossState(fast, slow)

	if long := emaSeries(closes, p.TrendEMA); len(fast) > 0 && len(slow) > 0 && len(long) > 0 {
		f := fast[len(fast)-1]
		s := slow[len(slow)-1]
		l := long[len(long)-1]
		cond.Uptrend = f > s && s > l && lastClose > f
		cond.Downtrend = f < s && s < l && lastClose < f
	}

	if vs := smaSeries(vols, p.VolumeWindow); len(vs) > 0 {
		cond.HighVolume = vols[len(vols)-1] > vs[len(vs)-1]*p.HighVolumeRatio
	}

	return cond
}

// crossState reports whether the fast series crossed the slow one on the last
// bar. Both series are tail-aligned to the most recent bar, so the comparison
// walks back from the end of each.
func crossState(fast, slow []float64) (golden, death bool) {
	if len(fast) < 2 || len(slow) < 2 {
		return false, false
	}
	cur := fast[len(fast)-1] - slow[len(slow)-1]
	prev := fast[len(fast)-2] - slow[len(slow)-2]
	golden = cur > 0 && prev <= 0
	death = cur < 0 && prev >= 0
	return
}

func emaSeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	ema := trend.NewEmaWithPeriod[float64](period)
	return helper.ChanToSlice(ema.Compute(helper.SliceToChan(values)))
}

func smaSeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	return helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
}

func rsiSeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period+1 {
		return nil
	}
	rsi := momentum.NewRsiWithPeriod[float64](period)
	return helper.ChanToSlice(rsi.Compute(helper.SliceToChan(values)))
}
