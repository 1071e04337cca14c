package logging

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FXModule provides the SDK's zap logger to an Fx application and flushes
// it on shutdown. A logging.Config must be available in the container.
var FXModule = fx.Module("logging",
	fx.Provide(
		New,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes buffered log entries on shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr fails on some platforms; the entries are
			// unbuffered there anyway.
			_ = logger.Sync()
			return nil
		},
	})
}
