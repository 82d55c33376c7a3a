package shell

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/internal/instrument"
)

const (
	logMsgEventsPublished  = "domain events published"
	logMsgPublishingFailed = "publishing domain events failed"
	logAttrAggregateID     = "aggregate_id"
	logAttrEventCount      = "event_count"
	logAttrAttempts        = "attempts"
	logAttrDurationMS      = "duration_ms"
	metricPublishDuration  = "publisher_publish_duration_seconds"
	metricEventsPublished  = "publisher_events_published"
	metricPublishErrors    = "publisher_errors_total"
	operationPublish       = "publish"
	errorTypeMappingFailed = "mapping_failed"
	defaultMaxConcurrency  = 8
)

var (
	// ErrNilAppender is returned when a publisher is created without an appender.
	ErrNilAppender = errors.New("appender must not be nil")

	// ErrInvalidMaxConcurrency is returned when the PublishAll concurrency limit is not positive.
	ErrInvalidMaxConcurrency = errors.New("max concurrency must be positive")

	// ErrPublishingEventsFailed is returned when the recorded events could not be appended.
	// The events stay buffered in the source, so publishing can be attempted again.
	ErrPublishingEventsFailed = errors.New("publishing events failed")
)

// EventSource is an aggregate that buffers domain events, e.g. *core.Document or *core.Tenant.
type EventSource interface {
	ID() uuid.UUID
	DrainEvents() core.DomainEvents
	ClearEvents()
}

// EventPublisher appends the events recorded by aggregates to an event store.
type EventPublisher struct {
	appender       eventstore.Appender
	retryOptions   []RetryOption
	maxConcurrency int
	instruments    instrument.Instruments
}

// PublisherOption configures an EventPublisher.
type PublisherOption func(*EventPublisher) error

// NewEventPublisher creates an EventPublisher that appends through appender.
func NewEventPublisher(appender eventstore.Appender, options ...PublisherOption) (*EventPublisher, error) {
	if appender == nil {
		return nil, ErrNilAppender
	}

	p := &EventPublisher{
		appender:       appender,
		maxConcurrency: defaultMaxConcurrency,
	}

	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// WithRetryOptions configures the retry of failed appends.
func WithRetryOptions(options ...RetryOption) PublisherOption {
	return func(p *EventPublisher) error {
		p.retryOptions = append(p.retryOptions, options...)
		return nil
	}
}

// WithMaxConcurrency limits how many sources PublishAll publishes at the same time.
func WithMaxConcurrency(limit int) PublisherOption {
	return func(p *EventPublisher) error {
		if limit <= 0 {
			return ErrInvalidMaxConcurrency
		}

		p.maxConcurrency = limit

		return nil
	}
}

// WithPublisherLogger sets the logger.
func WithPublisherLogger(logger eventstore.Logger) PublisherOption {
	return func(p *EventPublisher) error {
		p.instruments.Logger = logger
		return nil
	}
}

// WithPublisherContextualLogger sets a context-aware logger, which takes precedence over WithPublisherLogger.
func WithPublisherContextualLogger(logger eventstore.ContextualLogger) PublisherOption {
	return func(p *EventPublisher) error {
		p.instruments.ContextualLogger = logger
		return nil
	}
}

// WithPublisherMetrics sets the metrics collector for the publisher and its retries.
func WithPublisherMetrics(collector eventstore.MetricsCollector) PublisherOption {
	return func(p *EventPublisher) error {
		p.instruments.Metrics = collector
		p.retryOptions = append(p.retryOptions, WithRetryMetrics(collector))

		return nil
	}
}

// Publish appends all events buffered in source in a single append and clears the buffer afterwards.
//
// A source without buffered events is a no-op. If appending fails, the buffer is kept and the error
// wraps ErrPublishingEventsFailed. The source must not record events while it is published.
func (p *EventPublisher) Publish(ctx context.Context, source EventSource) error {
	events := source.DrainEvents()
	if len(events) == 0 {
		return nil
	}

	storableEvents, mappingErr := StorableEventsFrom(source.ID(), events)
	if mappingErr != nil {
		p.instruments.Error(ctx, logMsgPublishingFailed, mappingErr, logAttrAggregateID, source.ID().String())
		p.instruments.IncrementError(ctx, metricPublishErrors, operationPublish, errorTypeMappingFailed)

		return errors.Join(ErrPublishingEventsFailed, mappingErr)
	}

	start := time.Now()
	meta, appendErr := RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			return p.appender.Append(ctx, storableEvents[0], storableEvents[1:]...)
		},
		p.retryOptions...,
	)
	duration := time.Since(start)

	if appendErr != nil {
		p.instruments.Error(
			ctx,
			logMsgPublishingFailed,
			appendErr,
			logAttrAggregateID, source.ID().String(),
			logAttrAttempts, meta.Attempts,
		)
		p.instruments.IncrementError(ctx, metricPublishErrors, operationPublish, meta.LastErrorType)
		p.instruments.RecordDuration(ctx, metricPublishDuration, duration, operationPublish, instrument.StatusError)

		return errors.Join(ErrPublishingEventsFailed, appendErr)
	}

	source.ClearEvents()

	p.instruments.RecordDuration(ctx, metricPublishDuration, duration, operationPublish, instrument.StatusSuccess)
	p.instruments.RecordValue(ctx, metricEventsPublished, float64(len(storableEvents)), operationPublish)
	p.instruments.Info(
		ctx,
		logMsgEventsPublished,
		logAttrAggregateID, source.ID().String(),
		logAttrEventCount, len(storableEvents),
		logAttrAttempts, meta.Attempts,
		logAttrDurationMS, instrument.ToMilliseconds(duration),
	)

	return nil
}

// PublishAll publishes several sources concurrently and returns the first error.
// Sources that were published successfully are cleared even if another one failed.
func (p *EventPublisher) PublishAll(ctx context.Context, sources ...EventSource) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.maxConcurrency)

	for _, source := range sources {
		group.Go(func() error {
			return p.Publish(groupCtx, source)
		})
	}

	return group.Wait()
}
