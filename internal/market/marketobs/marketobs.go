package marketobs

import (
	"context"

	"sui-signal-bot/internal/interfaces"
	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/trace"
	"sui-signal-bot/internal/types"
)

// observableMarket wraps a MarketData with logging and tracing
type observableMarket struct {
	market interfaces.MarketData
}

var _ interfaces.MarketData = (*observableMarket)(nil)

// Wrap wraps a market data source with observability middleware
func Wrap(market interfaces.MarketData) interfaces.MarketData {
	return &observableMarket{market: market}
}

func (om *observableMarket) Klines(ctx context.Context, timeframe string, lookbackDays int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "market.Klines")
	defer span.End()

	candles, err := om.market.Klines(ctx, timeframe, lookbackDays)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch candles", err,
			"timeframe", timeframe,
			"lookback_days", lookbackDays,
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched",
		"timeframe", timeframe,
		"lookback_days", lookbackDays,
		"count", len(candles),
	)
	return candles, nil
}

func (om *observableMarket) Price(ctx context.Context) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "market.Price")
	defer span.End()

	price, err := om.market.Price(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch current price", err)
		return 0, err
	}

	logger.DebugSkip(ctx, 1, "Current price fetched", "price", price)
	return price, nil
}

func (om *observableMarket) DayStats(ctx context.Context) (types.DayStats, error) {
	ctx, span := trace.StartSpan(ctx, "market.DayStats")
	defer span.End()

	stats, err := om.market.DayStats(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch 24h stats", err)
		return types.DayStats{}, err
	}

	logger.DebugSkip(ctx, 1, "24h stats fetched",
		"change_pct", stats.PriceChangePct,
		"volume", stats.Volume,
	)
	return stats, nil
}
