package interfaces

import (
	"context"

	"sui-signal-bot/internal/types"
)

// Analyst turns a market snapshot and the current technical conditions into a
// sentiment verdict. Implementations must respect ctx and never block past it.
type Analyst interface {
	Verdict(ctx context.Context, px types.PriceContext, cond types.TechnicalConditions) (types.SentimentVerdict, error)
}
