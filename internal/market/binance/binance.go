// Package binance implements MarketData against the Binance spot API.
package binance

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	gobinance "github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"

	"sui-signal-bot/internal/trace"
	"sui-signal-bot/internal/types"
)

const (
	maxRetries   = 3
	retryBackoff = 100 * time.Millisecond
	klineLimit   = 1000
)

type Client struct {
	api     *gobinance.Client
	symbol  string
	limiter *rate.Limiter
}

func New(symbol, apiKey, secretKey string) *Client {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	api := gobinance.NewClient(apiKey, secretKey)
	api.HTTPClient = httpClient

	return &Client{
		api:     api,
		symbol:  symbol,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Klines fetches the candle series for the lookback window, oldest first.
// The exchange caps each response at 1000 bars, so wide windows (short
// timeframes over a long lookback) are fetched page by page until the series
// reaches the present.
func (c *Client) Klines(ctx context.Context, timeframe string, lookbackDays int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "binance.Klines")
	defer span.End()

	start := time.Now().AddDate(0, 0, -lookbackDays).UnixMilli()

	var candles []types.Candle
	for {
		var raw []*gobinance.Kline
		err := c.withRetry(ctx, func() error {
			var err error
			raw, err = c.api.NewKlinesService().
				Symbol(c.symbol).
				Interval(timeframe).
				StartTime(start).
				Limit(klineLimit).
				Do(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("fetch klines: %w", err)
		}

		for _, k := range raw {
			candles = append(candles, types.Candle{
				Ts:    k.OpenTime,
				Open:  parseFloat(k.Open),
				High:  parseFloat(k.High),
				Low:   parseFloat(k.Low),
				Close: parseFloat(k.Close),
				Vol:   parseFloat(k.Volume),
			})
		}
		if len(raw) < klineLimit {
			break
		}

		next := raw[len(raw)-1].CloseTime + 1
		if next <= start {
			break
		}
		start = next
	}
	return candles, nil
}

// Price returns the latest traded price for the pair.
func (c *Client) Price(ctx context.Context) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "binance.Price")
	defer span.End()

	var prices []*gobinance.SymbolPrice
	err := c.withRetry(ctx, func() error {
		var err error
		prices, err = c.api.NewListPricesService().Symbol(c.symbol).Do(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("fetch price: %w", err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("no price for %s", c.symbol)
	}
	return parseFloat(prices[0].Price), nil
}

// DayStats returns the 24h ticker statistics.
func (c *Client) DayStats(ctx context.Context) (types.DayStats, error) {
	ctx, span := trace.StartSpan(ctx, "binance.DayStats")
	defer span.End()

	var stats []*gobinance.PriceChangeStats
	err := c.withRetry(ctx, func() error {
		var err error
		stats, err = c.api.NewListPriceChangeStatsService().Symbol(c.symbol).Do(ctx)
		return err
	})
	if err != nil {
		return types.DayStats{}, fmt.Errorf("fetch 24h stats: %w", err)
	}
	if len(stats) == 0 {
		return types.DayStats{}, fmt.Errorf("no 24h stats for %s", c.symbol)
	}

	s := stats[0]
	return types.DayStats{
		PriceChange:    parseFloat(s.PriceChange),
		PriceChangePct: parseFloat(s.PriceChangePercent),
		High:           parseFloat(s.HighPrice),
		Low:            parseFloat(s.LowPrice),
		Volume:         parseFloat(s.Volume),
		Trades:         s.Count,
	}, nil
}

// withRetry runs fn under the rate limiter with bounded exponential backoff.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}

		wait := time.Duration(math.Pow(2, float64(attempt))) * retryBackoff
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
