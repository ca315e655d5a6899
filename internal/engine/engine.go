// Package engine runs one evaluation cycle: fetch market data, derive
// technical conditions, obtain the sentiment verdict, fuse, persist.
package engine

import (
	"context"
	"fmt"
	"time"

	"sui-signal-bot/internal/interfaces"
	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/signal"
	"sui-signal-bot/internal/siglog"
	"sui-signal-bot/internal/store"
	"sui-signal-bot/internal/ta"
	"sui-signal-bot/internal/types"
)

type Engine struct {
	cfg       *store.Config
	market    interfaces.MarketData
	analyst   interfaces.Analyst
	headlines interfaces.Headlines // optional, may be nil
}

func New(cfg *store.Config, market interfaces.MarketData, analyst interfaces.Analyst, headlines interfaces.Headlines) *Engine {
	return &Engine{cfg: cfg, market: market, analyst: analyst, headlines: headlines}
}

// Step runs one cycle to completion. Each cycle is stateless with respect to
// prior cycles; any upstream failure aborts the cycle without partial output.
func (e *Engine) Step(ctx context.Context) (*types.TradingSignal, error) {
	candles, err := e.market.Klines(ctx, e.cfg.Timeframe, e.cfg.LookbackDays)
	if err != nil {
		return nil, err
	}
	if len(candles) < e.cfg.MinCandles {
		return nil, fmt.Errorf("not enough candles: got %d, want %d", len(candles), e.cfg.MinCandles)
	}

	cond := ta.Conditions(candles, e.indicatorParams())
	logger.Debug(ctx, "Technical conditions derived",
		"symbol", e.cfg.Symbol,
		"uptrend", cond.Uptrend,
		"downtrend", cond.Downtrend,
		"golden_cross", cond.GoldenCross,
		"death_cross", cond.DeathCross,
		"rsi", cond.RSI,
		"high_volume", cond.HighVolume,
	)

	price, err := e.market.Price(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := e.market.DayStats(ctx)
	if err != nil {
		return nil, err
	}

	px := types.PriceContext{
		Close:     price,
		ChangePct: stats.PriceChangePct,
		Volume:    stats.Volume,
		Headlines: e.recentHeadlines(ctx),
	}

	verdict, err := e.analyst.Verdict(ctx, px, cond)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sig, err := signal.Fuse(now, price, cond, verdict,
		e.cfg.RiskRewardRatio, e.cfg.SignalConfidenceThreshold,
		func(tr ta.Trend) (types.TradeTargets, error) {
			return ta.Targets(price, candles, tr, e.cfg.RiskRewardRatio)
		})
	if err != nil {
		return nil, err
	}

	e.persist(ctx, now, price, cond, verdict, sig)

	timing := ""
	if sig.Entry != nil {
		timing = sig.Entry.Timing
	}
	logger.Decision(ctx, e.cfg.Symbol, string(sig.Signal), sig.Confidence, timing)

	return sig, nil
}

// persist writes the cycle artifact and the decision-log line. Persistence
// failures are logged, not fatal: the signal itself already succeeded.
func (e *Engine) persist(ctx context.Context, now time.Time, price float64, cond types.TechnicalConditions, verdict types.SentimentVerdict, sig *types.TradingSignal) {
	path, err := siglog.Write(e.cfg.SignalDir, now, sig)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to save signal file", err)
	} else {
		logger.Info(ctx, "Signal saved", "path", path)
	}

	bull, bear := signal.Scores(cond, verdict)
	timing := ""
	if sig.Entry != nil {
		timing = sig.Entry.Timing
	}
	if err := siglog.AppendDecision(e.cfg.SignalDir, siglog.DecisionEntry{
		Symbol:     e.cfg.Symbol,
		Signal:     string(sig.Signal),
		Confidence: sig.Confidence,
		Price:      price,
		BullScore:  bull,
		BearScore:  bear,
		Sentiment:  string(verdict.Sentiment),
		Timing:     timing,
		KeyLevels:  verdict.KeyLevels,
	}); err != nil {
		logger.ErrorWithErr(ctx, "Failed to append decision log", err)
	}
}

func (e *Engine) recentHeadlines(ctx context.Context) []string {
	if e.headlines == nil {
		return nil
	}
	hs, err := e.headlines.Recent(ctx, e.cfg.News.MaxHeadlines)
	if err != nil {
		logger.Warn(ctx, "Headline fetch failed, continuing without", "error", err)
		return nil
	}
	return hs
}

func (e *Engine) indicatorParams() ta.Params {
	p := ta.DefaultParams()
	p.FastEMA = e.cfg.Indicators.FastEMA
	p.SlowEMA = e.cfg.Indicators.SlowEMA
	p.TrendEMA = e.cfg.Indicators.TrendEMA
	p.RSIPeriod = e.cfg.Indicators.RSIPeriod
	p.VolumeWindow = e.cfg.Indicators.VolumeWindow
	p.HighVolumeRatio = e.cfg.Indicators.HighVolumeRatio
	return p
}
