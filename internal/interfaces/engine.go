package interfaces

import (
	"context"

	"sui-signal-bot/internal/types"
)

type Engine interface {
	Step(ctx context.Context) (*types.TradingSignal, error)
}
