package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sui-signal-bot/internal/store"
	"sui-signal-bot/internal/types"
)

type fakeMarket struct {
	candles []types.Candle
	price   float64
	stats   types.DayStats
	err     error
}

func (m *fakeMarket) Klines(ctx context.Context, timeframe string, lookbackDays int) ([]types.Candle, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.candles, nil
}

func (m *fakeMarket) Price(ctx context.Context) (float64, error) {
	return m.price, nil
}

func (m *fakeMarket) DayStats(ctx context.Context) (types.DayStats, error) {
	return m.stats, nil
}

type fakeAnalyst struct {
	verdict types.SentimentVerdict
	lastPx  types.PriceContext
}

func (a *fakeAnalyst) Verdict(ctx context.Context, px types.PriceContext, cond types.TechnicalConditions) (types.SentimentVerdict, error) {
	a.lastPx = px
	return a.verdict, nil
}

type fakeHeadlines struct {
	items []string
	err   error
}

func (h *fakeHeadlines) Recent(ctx context.Context, max int) ([]string, error) {
	return h.items, h.err
}

// risingMarket builds enough monotonically rising candles that the trend EMA
// warms up and the uptrend flag fires.
func risingMarket() *fakeMarket {
	candles := make([]types.Candle, 260)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		c := 100 + 0.5*float64(i)
		candles[i] = types.Candle{
			Ts:    base.Add(time.Duration(i) * time.Hour).UnixMilli(),
			Open:  c,
			High:  c + 0.5,
			Low:   c - 0.5,
			Close: c,
			Vol:   1000,
		}
	}
	last := candles[len(candles)-1].Close
	return &fakeMarket{
		candles: candles,
		price:   last,
		stats:   types.DayStats{PriceChangePct: 5.0, Volume: 1_000_000},
	}
}

func testConfig(t *testing.T) *store.Config {
	t.Helper()
	cfg := store.Defaults()
	cfg.SignalDir = t.TempDir()
	return cfg
}

func TestStepProducesBuySignal(t *testing.T) {
	cfg := testConfig(t)
	market := risingMarket()
	analyst := &fakeAnalyst{verdict: types.SentimentVerdict{
		Sentiment:  types.SentimentBullish,
		Confidence: 1.0,
	}}

	e := New(cfg, market, analyst, nil)
	sig, err := e.Step(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Uptrend (0.25) plus full-confidence bullish sentiment (0.50) clears
	// the 0.7 threshold.
	if sig.Signal != types.SignalBuy {
		t.Fatalf("expected buy, got %s (confidence %v)", sig.Signal, sig.Confidence)
	}
	if sig.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", sig.Confidence)
	}
	if sig.CurrentPrice != market.price {
		t.Errorf("current price = %v, want %v", sig.CurrentPrice, market.price)
	}
	if sig.Targets == nil || sig.Entry == nil {
		t.Fatal("directional signal must carry entry and targets")
	}
	if !(sig.Targets.StopLoss < market.price && market.price < sig.Targets.TakeProfit) {
		t.Errorf("long targets not around price: %+v", sig.Targets)
	}

	// The cycle artifact must be on disk.
	matches, err := filepath.Glob(filepath.Join(cfg.SignalDir, "signal_*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("expected one signal artifact, found %d", len(matches))
	}
	if _, err := os.Stat(filepath.Join(cfg.SignalDir, "decisions")); err != nil {
		t.Errorf("expected decision log directory: %v", err)
	}
}

func TestStepNeutralWithoutConviction(t *testing.T) {
	cfg := testConfig(t)
	analyst := &fakeAnalyst{verdict: types.SentimentVerdict{Sentiment: types.SentimentNeutral}}

	e := New(cfg, risingMarket(), analyst, nil)
	sig, err := e.Step(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sig.Signal != types.SignalNeutral {
		t.Fatalf("expected neutral, got %s", sig.Signal)
	}
	if sig.Targets != nil || sig.Entry != nil {
		t.Error("neutral signal must not carry entry or targets")
	}
}

func TestStepUpstreamErrorAborts(t *testing.T) {
	cfg := testConfig(t)
	wantErr := errors.New("exchange unreachable")
	market := &fakeMarket{err: wantErr}
	analyst := &fakeAnalyst{}

	e := New(cfg, market, analyst, nil)
	if _, err := e.Step(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	// An aborted cycle leaves no partial artifact behind.
	matches, _ := filepath.Glob(filepath.Join(cfg.SignalDir, "signal_*.json"))
	if len(matches) != 0 {
		t.Errorf("aborted cycle wrote %d artifacts", len(matches))
	}
}

func TestStepNotEnoughCandles(t *testing.T) {
	cfg := testConfig(t)
	market := risingMarket()
	market.candles = market.candles[:10]

	e := New(cfg, market, &fakeAnalyst{}, nil)
	_, err := e.Step(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not enough candles") {
		t.Fatalf("expected candle-count error, got %v", err)
	}
}

func TestStepHeadlinesReachAnalyst(t *testing.T) {
	cfg := testConfig(t)
	analyst := &fakeAnalyst{verdict: types.SentimentVerdict{Sentiment: types.SentimentNeutral}}
	headlines := &fakeHeadlines{items: []string{"Sui mainnet upgrade ships new consensus"}}

	e := New(cfg, risingMarket(), analyst, headlines)
	if _, err := e.Step(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(analyst.lastPx.Headlines) != 1 {
		t.Errorf("headlines not passed to analyst: %+v", analyst.lastPx.Headlines)
	}
}

func TestStepHeadlineFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	analyst := &fakeAnalyst{verdict: types.SentimentVerdict{Sentiment: types.SentimentNeutral}}
	headlines := &fakeHeadlines{err: errors.New("scrape blocked")}

	e := New(cfg, risingMarket(), analyst, headlines)
	sig, err := e.Step(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sig == nil || analyst.lastPx.Headlines != nil {
		t.Errorf("headline failure should degrade to none, got %+v", analyst.lastPx.Headlines)
	}
}
