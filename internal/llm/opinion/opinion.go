// Package opinion turns a free-text market opinion into a structured
// sentiment verdict. It is a best-effort keyword heuristic; downstream logic
// must tolerate its neutral default.
package opinion

import (
	"regexp"
	"strconv"
	"strings"

	"sui-signal-bot/internal/types"
)

var (
	bullishWords = []string{"bullish", "upward", "growth", "increase", "higher"}
	bearishWords = []string{"bearish", "downward", "decline", "decrease", "lower"}

	highConfidenceWords   = []string{"confident", "strong", "clear", "definitely"}
	mediumConfidenceWords = []string{"likely", "probable", "possible"}
	lowConfidenceWords    = []string{"uncertain", "unclear", "might", "maybe"}

	priceLevelRe = regexp.MustCompile(`\$(\d+\.?\d*)`)
)

// Parse extracts sentiment polarity, a confidence heuristic, mentioned price
// levels and recommendation tags from the opinion text.
func Parse(text string) types.SentimentVerdict {
	lc := strings.ToLower(text)
	return types.SentimentVerdict{
		Sentiment:       polarity(lc),
		Confidence:      confidence(lc),
		KeyLevels:       keyLevels(text),
		Recommendations: recommendations(lc),
		Raw:             text,
	}
}

func polarity(lc string) types.Sentiment {
	bullish := countPresent(lc, bullishWords)
	bearish := countPresent(lc, bearishWords)
	switch {
	case bullish > bearish:
		return types.SentimentBullish
	case bearish > bullish:
		return types.SentimentBearish
	default:
		return types.SentimentNeutral
	}
}

// confidence is the weighted average of the confidence-language markers found
// (high 1.0, medium 0.6, low 0.2), defaulting to 0.5 when none appear.
func confidence(lc string) float64 {
	high := countPresent(lc, highConfidenceWords)
	medium := countPresent(lc, mediumConfidenceWords)
	low := countPresent(lc, lowConfidenceWords)

	total := high + medium + low
	if total == 0 {
		return 0.5
	}
	return (float64(high)*1.0 + float64(medium)*0.6 + float64(low)*0.2) / float64(total)
}

func keyLevels(text string) []float64 {
	matches := priceLevelRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	levels := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			levels = append(levels, v)
		}
	}
	return levels
}

// recommendations tags are independent, not mutually exclusive.
func recommendations(lc string) []string {
	var recs []string
	if strings.Contains(lc, "buy") || strings.Contains(lc, "long") {
		recs = append(recs, "consider_long")
	}
	if strings.Contains(lc, "sell") || strings.Contains(lc, "short") {
		recs = append(recs, "consider_short")
	}
	if strings.Contains(lc, "wait") || strings.Contains(lc, "hold") {
		recs = append(recs, "wait_for_confirmation")
	}
	return recs
}

func countPresent(lc string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lc, w) {
			n++
		}
	}
	return n
}
