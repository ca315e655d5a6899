package interfaces

import (
	"context"

	"sui-signal-bot/internal/types"
)

// MarketData supplies candles and current market state for the traded pair.
// Klines must return bars ordered oldest to newest.
type MarketData interface {
	Klines(ctx context.Context, timeframe string, lookbackDays int) ([]types.Candle, error)
	Price(ctx context.Context) (float64, error)
	DayStats(ctx context.Context) (types.DayStats, error)
}
