// Package signal fuses technical conditions and an LLM sentiment verdict into
// one confidence-scored trading signal with entry and exit levels.
package signal

import (
	"strings"
	"time"

	"sui-signal-bot/internal/ta"
	"sui-signal-bot/internal/types"
)

// rule contributes a fixed weight to the bull or bear score when its
// predicate fires. Rules are independent; several can fire in one cycle.
type rule struct {
	name string
	pred func(types.TechnicalConditions) bool
	bull float64
	bear float64
}

// The technical side can contribute at most 0.50 per direction; the sentiment
// side contributes the other 0.50 scaled by the verdict's own confidence.
var rules = []rule{
	{"uptrend", func(c types.TechnicalConditions) bool { return c.Uptrend }, 0.25, 0},
	{"downtrend", func(c types.TechnicalConditions) bool { return c.Downtrend }, 0, 0.25},
	{"golden_cross", func(c types.TechnicalConditions) bool { return c.GoldenCross }, 0.15, 0},
	{"death_cross", func(c types.TechnicalConditions) bool { return c.DeathCross }, 0, 0.15},
	{"rsi_oversold", func(c types.TechnicalConditions) bool { return c.RSIOversold }, 0.10, 0},
	{"rsi_overbought", func(c types.TechnicalConditions) bool { return c.RSIOverbought }, 0, 0.10},
}

const sentimentWeight = 0.5

// Scores evaluates the rule table plus the sentiment contribution and returns
// the two accumulators. Both are bounded in [0, 1] by construction.
func Scores(cond types.TechnicalConditions, verdict types.SentimentVerdict) (bull, bear float64) {
	for _, r := range rules {
		if r.pred(cond) {
			bull += r.bull
			bear += r.bear
		}
	}
	switch verdict.Sentiment {
	case types.SentimentBullish:
		bull += sentimentWeight * verdict.Confidence
	case types.SentimentBearish:
		bear += sentimentWeight * verdict.Confidence
	}
	return bull, bear
}

// TargetFunc computes trade targets for the winning direction. It is injected
// so the fuser stays a pure function of its inputs.
type TargetFunc func(tr ta.Trend) (types.TradeTargets, error)

// Fuse combines the technical conditions and the sentiment verdict into the
// cycle's TradingSignal. The threshold comparison is strict: a score exactly
// equal to the threshold yields a neutral signal, as does a bull/bear tie.
func Fuse(now time.Time, currentPrice float64, cond types.TechnicalConditions, verdict types.SentimentVerdict, riskReward, threshold float64, targets TargetFunc) (*types.TradingSignal, error) {
	bull, bear := Scores(cond, verdict)

	var direction types.Direction
	var confidence float64
	switch {
	case bull > bear && bull > threshold:
		direction = types.SignalBuy
		confidence = bull
	case bear > bull && bear > threshold:
		direction = types.SignalSell
		confidence = bear
	default:
		return &types.TradingSignal{
			Timestamp:  now.Format(time.RFC3339),
			Signal:     types.SignalNeutral,
			Message:    "No clear trading opportunity",
			Confidence: max(bull, bear),
		}, nil
	}

	tr := ta.TrendLong
	if direction == types.SignalSell {
		tr = ta.TrendShort
	}
	tg, err := targets(tr)
	if err != nil {
		return nil, err
	}

	return &types.TradingSignal{
		Timestamp:    now.Format(time.RFC3339),
		Signal:       direction,
		CurrentPrice: currentPrice,
		Confidence:   confidence,
		Entry: &types.Entry{
			Price:  currentPrice,
			Type:   "market",
			Timing: EntryTiming(cond, verdict),
		},
		Targets:         &tg,
		RiskRewardRatio: riskReward,
		KeyLevels:       verdict.KeyLevels,
		TechnicalFactors: &types.TechnicalFactors{
			Trend:           trendSummary(cond),
			RSICondition:    rsiSummary(cond),
			VolumeCondition: volumeSummary(cond),
		},
		AIAnalysis: &types.AIAnalysis{
			Sentiment:       verdict.Sentiment,
			Confidence:      verdict.Confidence,
			Recommendations: verdict.Recommendations,
		},
	}, nil
}

// EntryTiming returns "immediate" when volume confirms and the sentiment is
// strongly held, otherwise a "delayed: ..." string listing the caveats in
// fixed order: oversold, overbought, volume.
func EntryTiming(cond types.TechnicalConditions, verdict types.SentimentVerdict) string {
	if cond.HighVolume && verdict.Confidence > 0.8 {
		return "immediate"
	}

	var caveats []string
	if cond.RSIOversold {
		caveats = append(caveats, "wait for RSI recovery")
	}
	if cond.RSIOverbought {
		caveats = append(caveats, "wait for RSI pullback")
	}
	if !cond.HighVolume {
		caveats = append(caveats, "wait for volume confirmation")
	}
	if len(caveats) == 0 {
		return "immediate"
	}
	return "delayed: " + strings.Join(caveats, ", ")
}

func trendSummary(cond types.TechnicalConditions) string {
	if cond.Uptrend {
		return "bullish"
	}
	return "bearish"
}

func rsiSummary(cond types.TechnicalConditions) string {
	switch {
	case cond.RSIOversold:
		return "oversold"
	case cond.RSIOverbought:
		return "overbought"
	default:
		return "neutral"
	}
}

func volumeSummary(cond types.TechnicalConditions) string {
	if cond.HighVolume {
		return "high"
	}
	return "normal"
}
