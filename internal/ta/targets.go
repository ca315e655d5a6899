package ta

import (
	"errors"
	"math"

	"sui-signal-bot/internal/types"
)

type Trend string

const (
	TrendLong  Trend = "long"
	TrendShort Trend = "short"
)

// Window and multiplier for the volatility-range stop distance.
const (
	targetWindow = 14
	stopMult     = 1.5
)

var (
	ErrNoCandles = errors.New("ta: no candles for target calculation")
	ErrZeroClose = errors.New("ta: zero close price, volatility undefined")
)

// Targets derives stop-loss and take-profit levels from the recent high/low
// range, a range-based proxy for ATR expressed as a fraction of price. The
// window degrades to however many bars are available.
func Targets(currentPrice float64, candles []types.Candle, tr Trend, riskReward float64) (types.TradeTargets, error) {
	if len(candles) == 0 {
		return types.TradeTargets{}, ErrNoCandles
	}

	w := targetWindow
	if len(candles) < w {
		w = len(candles)
	}

	hi := math.Inf(-1)
	lo := math.Inf(1)
	for _, c := range candles[len(candles)-w:] {
		hi = math.Max(hi, c.High)
		lo = math.Min(lo, c.Low)
	}

	lastClose := candles[len(candles)-1].Close
	if lastClose == 0 {
		return types.TradeTargets{}, ErrZeroClose
	}

	rangePct := (hi - lo) / lastClose
	stopDistance := currentPrice * rangePct * stopMult

	var stopLoss, takeProfit float64
	if tr == TrendLong {
		stopLoss = currentPrice - stopDistance
		takeProfit = currentPrice + stopDistance*riskReward
	} else {
		stopLoss = currentPrice + stopDistance
		takeProfit = currentPrice - stopDistance*riskReward
	}

	return types.TradeTargets{
		StopLoss:       stopLoss,
		TakeProfit:     takeProfit,
		RiskDistance:   math.Abs(currentPrice - stopLoss),
		RewardDistance: math.Abs(takeProfit - currentPrice),
	}, nil
}
