package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/internal/instrument"
	"github.com/AntonStoeckl/document-aggregates-go/shell"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration.
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"
	// CommandHandlerErrorsMetric counts failed commands by error type.
	CommandHandlerErrorsMetric = "commandhandler_errors_total"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"
	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"
	// LogAttrAggregateID identifies the affected aggregate in logs.
	LogAttrAggregateID = "aggregate_id"
	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	errorTypeValidation     = "validation"
	errorTypeBusinessRule   = "business_rule"
	errorTypeNotFound       = "not_found"
	errorTypePublishing     = "publishing"
	errorTypeInfrastructure = "infrastructure"
)

var (
	// ErrRepositoryFailed wraps errors returned by a repository other than the not-found sentinels.
	ErrRepositoryFailed = errors.New("repository operation failed")
)

// Publisher publishes the events an aggregate recorded, see shell.EventPublisher.
type Publisher interface {
	Publish(ctx context.Context, source shell.EventSource) error
}

// Option configures the Support of a command handler.
type Option func(*Support)

// WithPublisher makes handlers publish recorded events after persisting an aggregate.
// Without a publisher the events stay buffered in the returned aggregate.
func WithPublisher(publisher Publisher) Option {
	return func(s *Support) {
		s.publisher = publisher
	}
}

// WithLogger sets the logger.
func WithLogger(logger eventstore.Logger) Option {
	return func(s *Support) {
		s.instruments.Logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over WithLogger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(s *Support) {
		s.instruments.ContextualLogger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(s *Support) {
		s.instruments.Metrics = collector
	}
}

// Support bundles the optional collaborators every command handler uses.
type Support struct {
	publisher   Publisher
	instruments instrument.Instruments
}

// NewSupport applies options to an empty Support.
func NewSupport(options ...Option) Support {
	s := Support{}
	for _, option := range options {
		option(&s)
	}

	return s
}

// Publish hands source to the configured publisher, if any.
func (s Support) Publish(ctx context.Context, source shell.EventSource) error {
	if s.publisher == nil {
		return nil
	}

	return s.publisher.Publish(ctx, source)
}

// Observe logs and measures the outcome of one command. Call it with the start time of the command.
func (s Support) Observe(ctx context.Context, commandType string, aggregateID uuid.UUID, start time.Time, err error) {
	duration := time.Since(start)

	if err != nil {
		s.instruments.Error(
			ctx,
			LogMsgCommandFailed,
			err,
			LogAttrCommandType, commandType,
			LogAttrAggregateID, aggregateID.String(),
		)
		s.instruments.IncrementError(ctx, CommandHandlerErrorsMetric, commandType, ErrorTypeOf(err))
		s.instruments.RecordDuration(ctx, CommandHandlerDurationMetric, duration, commandType, instrument.StatusError)

		return
	}

	s.instruments.RecordDuration(ctx, CommandHandlerDurationMetric, duration, commandType, instrument.StatusSuccess)
	s.instruments.Info(
		ctx,
		LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrAggregateID, aggregateID.String(),
		LogAttrDurationMS, instrument.ToMilliseconds(duration),
	)
}

// ErrorTypeOf classifies a command error for metrics labels.
func ErrorTypeOf(err error) string {
	switch {
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrTenantNotFound):
		return errorTypeNotFound
	case errors.Is(err, shell.ErrPublishingEventsFailed):
		return errorTypePublishing
	case errors.Is(err, core.ErrBusinessRuleViolation):
		return errorTypeBusinessRule
	case errors.Is(err, core.ErrDomainValidation),
		errors.Is(err, core.ErrUnknownAttribute),
		errors.Is(err, core.ErrAttributeUpdate):
		return errorTypeValidation
	default:
		return errorTypeInfrastructure
	}
}

// RepositoryError joins err with ErrRepositoryFailed unless it is nil or a not-found sentinel.
func RepositoryError(err error) error {
	if err == nil || errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrTenantNotFound) {
		return err
	}

	return errors.Join(ErrRepositoryFailed, err)
}
