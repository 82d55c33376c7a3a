package postgresengine

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore/internal/adapters"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the events table name, see eventstore.ValidateEventsTableName.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if err := eventstore.ValidateEventsTableName(tableName); err != nil {
			return err
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger.
//
// Debug level: SQL statements with execution timing
// Info level: event counts, durations, skipped duplicates
// Warn level: non-critical issues like cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.instruments.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, which takes precedence over WithLogger.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.instruments.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector, which receives durations, event counts and database errors.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.instruments.Metrics = collector
		return nil
	}
}

// WithReplica routes eventually consistent queries to a replica pool.
// It only applies to stores created with NewEventStoreFromPGXPool.
func WithReplica(replica *pgxpool.Pool) Option {
	return func(es *EventStore) error {
		if replica == nil {
			return eventstore.ErrNilDatabaseConnection
		}

		primary, ok := es.db.(*adapters.PGXAdapter)
		if !ok {
			return ErrReplicaRequiresPGXPool
		}

		es.db = primary.WithReplica(replica)

		return nil
	}
}
