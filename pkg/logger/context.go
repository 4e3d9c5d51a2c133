package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	stageKey  contextKey = "stage"
	loggerKey contextKey = "logger"
)

// NewRunID returns a fresh identifier for one pickup check
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds the run id to context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage tags context with the pipeline stage (drive, extract, notify)
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if cl, ok := ctx.Value(loggerKey).(*zap.Logger); ok && cl != nil {
		return cl
	}

	l := Logger
	var fields []zap.Field
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}
	if stage, ok := ctx.Value(stageKey).(string); ok && stage != "" {
		fields = append(fields, zap.String("stage", stage))
	}
	if len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}

// DurationField returns a zap field for duration in milliseconds
func DurationField(durationMs int64) zap.Field {
	return zap.Int64("duration_ms", durationMs)
}

// CountField returns a zap field for item counts
func CountField(count int) zap.Field {
	return zap.Int("count", count)
}
