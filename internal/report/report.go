// Package report renders a trading signal for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"sui-signal-bot/internal/types"
)

// Render writes a human-readable rendering of the signal.
func Render(w io.Writer, sig *types.TradingSignal) {
	if sig == nil {
		fmt.Fprintln(w, "\n⚠️  No trading signal generated")
		return
	}

	bar := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintf(w, "🔔 Trading Signal Generated at %s\n", sig.Timestamp)
	fmt.Fprintln(w, bar)

	fmt.Fprintf(w, "\n%s Signal: %s\n", signalEmoji(sig.Signal), strings.ToUpper(string(sig.Signal)))
	fmt.Fprintf(w, "📊 Confidence: %.2f%%\n", sig.Confidence*100)

	if sig.Signal == types.SignalNeutral {
		if sig.Message != "" {
			fmt.Fprintf(w, "\n%s\n", sig.Message)
		}
		fmt.Fprintf(w, "\n%s\n", bar)
		return
	}

	if sig.Entry != nil {
		fmt.Fprintln(w, "\n📍 Entry Point:")
		fmt.Fprintf(w, "  Price: $%.4f\n", sig.Entry.Price)
		fmt.Fprintf(w, "  Timing: %s\n", sig.Entry.Timing)
	}

	if sig.Targets != nil {
		fmt.Fprintln(w, "\n🎯 Targets:")
		fmt.Fprintf(w, "  Stop Loss: $%.4f\n", sig.Targets.StopLoss)
		fmt.Fprintf(w, "  Take Profit: $%.4f\n", sig.Targets.TakeProfit)
		fmt.Fprintf(w, "  Risk/Reward Ratio: %.1f\n", sig.RiskRewardRatio)
	}

	if sig.TechnicalFactors != nil {
		fmt.Fprintln(w, "\n📈 Technical Factors:")
		fmt.Fprintf(w, "  Trend: %s\n", sig.TechnicalFactors.Trend)
		fmt.Fprintf(w, "  RSI Condition: %s\n", sig.TechnicalFactors.RSICondition)
		fmt.Fprintf(w, "  Volume: %s\n", sig.TechnicalFactors.VolumeCondition)
	}

	if sig.AIAnalysis != nil {
		fmt.Fprintln(w, "\n🤖 AI Analysis:")
		fmt.Fprintf(w, "  Sentiment: %s\n", sig.AIAnalysis.Sentiment)
		fmt.Fprintf(w, "  Confidence: %.2f%%\n", sig.AIAnalysis.Confidence*100)
		if len(sig.AIAnalysis.Recommendations) > 0 {
			fmt.Fprintf(w, "  Recommendations: %s\n", strings.Join(sig.AIAnalysis.Recommendations, ", "))
		}
	}

	if len(sig.KeyLevels) > 0 {
		fmt.Fprintln(w, "\n📊 Key Price Levels:")
		levels := make([]string, len(sig.KeyLevels))
		for i, l := range sig.KeyLevels {
			levels[i] = fmt.Sprintf("$%.4f", l)
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(levels, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", bar)
}

func signalEmoji(d types.Direction) string {
	switch d {
	case types.SignalBuy:
		return "🟢"
	case types.SignalSell:
		return "🔴"
	default:
		return "⚪"
	}
}
