package engineobs

import (
	"context"
	"time"

	"sui-signal-bot/internal/interfaces"
	"sui-signal-bot/internal/logger"
	"sui-signal-bot/internal/trace"
	"sui-signal-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{engine: eng}
}

func (oe *observableEngine) Step(ctx context.Context) (*types.TradingSignal, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Step")
	defer span.End()

	start := time.Now()
	logger.InfoSkip(ctx, 1, "Starting evaluation cycle")

	sig, err := oe.engine.Step(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Evaluation cycle failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Evaluation cycle completed",
		"signal", string(sig.Signal),
		"confidence", sig.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return sig, nil
}
