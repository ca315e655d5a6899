package llmobs

import (
	"context"

	"sui-signal-bot/internal/interfaces"
	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/trace"
	"sui-signal-bot/internal/types"
)

// observableAnalyst wraps an Analyst with logging and tracing
type observableAnalyst struct {
	analyst interfaces.Analyst
}

var _ interfaces.Analyst = (*observableAnalyst)(nil)

// Wrap wraps an analyst with observability middleware
func Wrap(analyst interfaces.Analyst) interfaces.Analyst {
	return &observableAnalyst{analyst: analyst}
}

func (oa *observableAnalyst) Verdict(ctx context.Context, px types.PriceContext, cond types.TechnicalConditions) (types.SentimentVerdict, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Verdict")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting sentiment verdict",
		"price", px.Close,
		"change_pct", px.ChangePct,
		"rsi", cond.RSI,
	)

	verdict, err := oa.analyst.Verdict(ctx, px, cond)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get sentiment verdict", err,
			"price", px.Close,
		)
		return types.SentimentVerdict{}, err
	}

	logger.InfoSkip(ctx, 1, "Sentiment verdict received",
		"sentiment", string(verdict.Sentiment),
		"confidence", verdict.Confidence,
		"key_levels", len(verdict.KeyLevels),
		"recommendations", verdict.Recommendations,
	)

	return verdict, nil
}
