package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"sui-signal-bot/internal/engine"
	"sui-signal-bot/internal/engine/engineobs"
	"sui-signal-bot/internal/interfaces"
	"sui-signal-bot/internal/llm/deepseek"
	"sui-signal-bot/internal/llm/llmobs"
	"sui-signal-bot/internal/llm/noop"
	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/market/binance"
	"sui-signal-bot/internal/market/marketobs"
	"sui-signal-bot/internal/news"
	"sui-signal-bot/internal/siglog"
	"sui-signal-bot/internal/store"
	"sui-signal-bot/internal/trace"
)

// initializeSystem loads the env file and brings up logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// loadConfig returns the configuration, degrading to defaults on any config
// error rather than aborting
func loadConfig(ctx context.Context) *store.Config {
	cfg, err := store.Load("config.yaml")
	if err != nil {
		logger.Warn(ctx, "Config unavailable, using defaults", "error", err)
	}
	return cfg
}

// compressOldLogs gzips old decision logs if retention is configured
func compressOldLogs(ctx context.Context, cfg *store.Config) {
	v := os.Getenv("SIGNAL_LOG_RETENTION_DAYS")
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn(ctx, "Invalid SIGNAL_LOG_RETENTION_DAYS", "value", v)
		return
	}
	if err := siglog.CompressOlder(cfg.SignalDir, n); err != nil {
		logger.Warn(ctx, "Failed to compress old logs", "error", err)
	}
}

// initializeMarket builds the Binance spot data source with observability
func initializeMarket(cfg *store.Config) interfaces.MarketData {
	m := binance.New(cfg.Symbol, os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_SECRET_KEY"))
	return marketobs.Wrap(m)
}

// initializeAnalyst builds the sentiment provider with observability. Without
// an API key the noop analyst keeps the bot running on technicals alone.
func initializeAnalyst(ctx context.Context, cfg *store.Config) interfaces.Analyst {
	var analyst interfaces.Analyst
	if os.Getenv(cfg.LLM.APIKeyEnv) != "" {
		analyst = deepseek.New(cfg)
	} else {
		analyst = noop.New()
		logger.Warn(ctx, "No LLM API key configured - using noop analyst (neutral sentiment)",
			"api_key_env", cfg.LLM.APIKeyEnv)
	}
	return llmobs.Wrap(analyst)
}

// initializeEngine wires market, analyst and headline source into the engine
func initializeEngine(ctx context.Context, cfg *store.Config) interfaces.Engine {
	market := initializeMarket(cfg)
	analyst := initializeAnalyst(ctx, cfg)

	var headlines interfaces.Headlines
	if cfg.News.Enabled {
		headlines = news.NewScraper(cfg.News.URL)
		logger.Info(ctx, "Headline context enabled", "url", cfg.News.URL)
	}

	eng := engine.New(cfg, market, analyst, headlines)
	return engineobs.Wrap(eng)
}
