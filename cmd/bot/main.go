package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/report"
	"sui-signal-bot/internal/trace"
)

// Repeated upstream failures stretch the wait past the poll interval, doubling
// per consecutive failure up to this cap.
const maxBackoff = 30 * time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg := loadConfig(ctx)
	compressOldLogs(ctx, cfg)

	eng := initializeEngine(ctx, cfg)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Signal bot started",
		"symbol", cfg.Symbol,
		"timeframe", cfg.Timeframe,
		"poll_seconds", cfg.PollSeconds,
		"threshold", cfg.SignalConfidenceThreshold,
	)

	interval := time.Duration(cfg.PollSeconds) * time.Second
	failures := 0

	for {
		sig, err := eng.Step(ctx)
		wait := interval
		if err != nil {
			// Recoverable by design: skip the cycle and retry later,
			// backing off while the upstream stays unavailable.
			failures++
			if failures > 1 {
				wait = interval << min(failures-1, 10)
				if wait > maxBackoff {
					wait = maxBackoff
				}
			}
			logger.Warn(ctx, "Cycle skipped", "consecutive_failures", failures, "retry_in", wait.String())
		} else {
			failures = 0
			report.Render(os.Stdout, sig)
		}

		logger.Info(ctx, "Waiting for next update", "wait", wait.String())
		select {
		case <-time.After(wait):
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			return
		case <-ctx.Done():
			return
		}
	}
}
