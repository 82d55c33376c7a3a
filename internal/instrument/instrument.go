// Package instrument holds the optional logging and metrics sinks shared by the engines and the publisher.
// Every method is a no-op for sinks that are not configured.
package instrument

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

// Label keys and values used on all metrics.
const (
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"
	StatusSuccess  = "success"
	StatusError    = "error"
)

// Instruments bundles the optional sinks. A ContextualLogger takes precedence over a Logger.
type Instruments struct {
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
}

// Debug logs at debug level.
func (i Instruments) Debug(ctx context.Context, msg string, args ...any) {
	switch {
	case i.ContextualLogger != nil:
		i.ContextualLogger.DebugContext(ctx, msg, args...)
	case i.Logger != nil:
		i.Logger.Debug(msg, args...)
	}
}

// Info logs at info level.
func (i Instruments) Info(ctx context.Context, msg string, args ...any) {
	switch {
	case i.ContextualLogger != nil:
		i.ContextualLogger.InfoContext(ctx, msg, args...)
	case i.Logger != nil:
		i.Logger.Info(msg, args...)
	}
}

// Warn logs at warn level.
func (i Instruments) Warn(ctx context.Context, msg string, args ...any) {
	switch {
	case i.ContextualLogger != nil:
		i.ContextualLogger.WarnContext(ctx, msg, args...)
	case i.Logger != nil:
		i.Logger.Warn(msg, args...)
	}
}

// Error logs at error level with the error message under the "error" key.
func (i Instruments) Error(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{"error", err.Error()}, args...)

	switch {
	case i.ContextualLogger != nil:
		i.ContextualLogger.ErrorContext(ctx, msg, allArgs...)
	case i.Logger != nil:
		i.Logger.Error(msg, allArgs...)
	}
}

// RecordDuration records a duration metric for operation with the given status.
func (i Instruments) RecordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if i.Metrics == nil {
		return
	}

	labels := map[string]string{LabelOperation: operation, LabelStatus: status}

	if contextual, ok := i.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	i.Metrics.RecordDuration(metric, d, labels)
}

// RecordValue records a value metric for a successful operation.
func (i Instruments) RecordValue(ctx context.Context, metric string, value float64, operation string) {
	if i.Metrics == nil {
		return
	}

	labels := map[string]string{LabelOperation: operation, LabelStatus: StatusSuccess}

	if contextual, ok := i.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	i.Metrics.RecordValue(metric, value, labels)
}

// IncrementError increments an error counter labelled with the operation and error type.
func (i Instruments) IncrementError(ctx context.Context, metric string, operation, errorType string) {
	if i.Metrics == nil {
		return
	}

	labels := map[string]string{LabelOperation: operation, LabelStatus: StatusError, LabelErrorType: errorType}

	if contextual, ok := i.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	i.Metrics.IncrementCounter(metric, labels)
}

// ToMilliseconds converts a duration to milliseconds with 3 decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
