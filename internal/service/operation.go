package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RuanLopes1350/AnotaAi/internal/redact"
)

// operation groups the log events of one service call under a fresh id.
type operation struct {
	ctx    context.Context
	logger *slog.Logger
	start  time.Time
}

// startOperation logs the entry of the named operation. Payload maps are
// redacted before they reach the log.
func startOperation(ctx context.Context, base *slog.Logger, name string, attrs ...any) *operation {
	op := &operation{
		ctx: ctx,
		logger: base.With(
			slog.String("operation", name),
			slog.String("op_id", uuid.NewString()),
		),
		start: time.Now(),
	}
	op.logger.DebugContext(ctx, "operation started", attrs...)
	return op
}

// payload returns a log attribute holding a redacted copy of raw.
func payload(raw map[string]any) slog.Attr {
	return slog.Any("payload", redact.Fields(raw))
}

// succeed logs the successful exit of the operation.
func (o *operation) succeed(attrs ...any) {
	attrs = append(attrs, slog.Duration("duration", time.Since(o.start)))
	o.logger.InfoContext(o.ctx, "operation completed", attrs...)
}

// fail logs err and returns it. Client errors are logged at warn level,
// everything else at error level.
func (o *operation) fail(err error) error {
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	}
	o.logger.Log(o.ctx, level, "operation failed",
		slog.String("error", redact.Error(err)),
		slog.Duration("duration", time.Since(o.start)),
	)
	return err
}
