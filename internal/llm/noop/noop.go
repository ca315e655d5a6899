package noop

import (
	"context"

	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/types"
)

// Analyst is the fallback sentiment provider used when no LLM endpoint is
// configured. It always returns a neutral verdict with zero confidence, so
// fusion runs on technical conditions alone.
type Analyst struct{}

func New() *Analyst {
	return &Analyst{}
}

func (a *Analyst) Verdict(ctx context.Context, px types.PriceContext, cond types.TechnicalConditions) (types.SentimentVerdict, error) {
	logger.Debug(ctx, "Noop analyst called - always returns neutral")
	return types.SentimentVerdict{
		Sentiment:  types.SentimentNeutral,
		Confidence: 0.0,
	}, nil
}
