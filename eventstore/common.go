package eventstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

const maxEventsTableNameLength = 63

var eventsTableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var (
	// ErrEmptyEventsTableName is returned when an engine is configured with an empty table name.
	ErrEmptyEventsTableName = errors.New("events table name must not be empty")

	// ErrInvalidEventsTableName is returned when the table name is not a plain lowercase SQL identifier.
	ErrInvalidEventsTableName = errors.New("events table name must be a lowercase SQL identifier")

	// ErrNilDatabaseConnection is returned when an engine is created without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when the SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingEventsFailed is returned when reading events from the database failed.
	ErrQueryingEventsFailed = errors.New("querying events failed")

	// ErrScanningDBRowFailed is returned when a result row could not be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrBuildingStorableEventFailed is returned when a stored row does not form a valid StorableEvent.
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")

	// ErrAppendingEventFailed is returned when writing events to the database failed.
	// Failures of this kind are transient from the caller's point of view and may be retried.
	ErrAppendingEventFailed = errors.New("appending event failed")

	// ErrGettingRowsAffectedFailed is returned when the driver could not report the affected rows.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrCreatingSchemaFailed is returned when EnsureSchema could not create the events table.
	ErrCreatingSchemaFailed = errors.New("creating events schema failed")
)

// ValidateEventsTableName checks that tableName can be put into SQL statements unquoted:
// lowercase letters, digits and underscores, not starting with a digit, at most 63 bytes.
func ValidateEventsTableName(tableName string) error {
	if tableName == "" {
		return ErrEmptyEventsTableName
	}

	if len(tableName) > maxEventsTableNameLength || !eventsTableNamePattern.MatchString(tableName) {
		return fmt.Errorf("%w: %q", ErrInvalidEventsTableName, tableName)
	}

	return nil
}

// Appender appends events to an event store.
//
// Append is idempotent per EventID: events whose id is already stored are skipped,
// so a retried append never duplicates events.
type Appender interface {
	Append(ctx context.Context, event StorableEvent, additionalEvents ...StorableEvent) error
}

// Querier reads events back from an event store in append order.
type Querier interface {
	Query(ctx context.Context, filter Filter) (StorableEvents, error)
}

// EventStore is implemented by the engines in the sub-packages.
type EventStore interface {
	Appender
	Querier
}
