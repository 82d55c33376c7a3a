package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore/internal/adapters"
	"github.com/AntonStoeckl/document-aggregates-go/internal/instrument"
)

const (
	defaultEventTableName    = "events"
	dialectSQLite            = "sqlite3"
	occurredAtLayout         = "2006-01-02T15:04:05.000000000Z07:00"
	logMsgBuildQueryFailed   = "failed to build query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgDBExecFailed       = "database execution failed during event append"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgSchemaFailed       = "failed to create events table"
	logMsgQueryCompleted     = "eventstore operation: query completed"
	logMsgEventsAppended     = "eventstore operation: events appended"
	logMsgDuplicatesSkipped  = "eventstore operation: duplicate events skipped"
	logMsgSQLExecuted        = "executed sql for: "
	logAttrQuery             = "query"
	logAttrEventCount        = "event_count"
	logAttrRowsAffected      = "rows_affected"
	logAttrDurationMS        = "duration_ms"
	logActionQuery           = "query"
	logActionAppend          = "append"
	metricQueryDuration      = "eventstore_query_duration_seconds"
	metricAppendDuration     = "eventstore_append_duration_seconds"
	metricDatabaseErrors     = "eventstore_database_errors_total"
	errorTypeDatabaseQuery   = "database_query"
	errorTypeDatabaseExec    = "database_exec"
	errorTypeRowScan         = "row_scan"
	colEventID               = "event_id"
	colEventType             = "event_type"
	colAggregateID           = "aggregate_id"
	colOccurredAt            = "occurred_at"
	colPayload               = "payload"
	colMetadata              = "metadata"
	colSequenceNumber        = "sequence_number"
)

// EventStore appends and queries storable events in a SQLite table.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	instruments    instrument.Instruments
}

// NewEventStore creates a new EventStore on a sql.DB opened with the "sqlite" driver.
func NewEventStore(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	es := &EventStore{
		db:             adapters.NewSQLAdapter(db),
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// SchemaStatements returns the DDL statements for an events table with the given name.
func SchemaStatements(tableName string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id TEXT NOT NULL UNIQUE,
	event_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	payload TEXT NOT NULL,
	metadata TEXT NOT NULL
)`, tableName),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_aggregate_id_idx ON %[1]s (aggregate_id)`, tableName),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type)`, tableName),
	}
}

// EnsureSchema creates the events table and its indexes if they do not exist.
func (es *EventStore) EnsureSchema(ctx context.Context) error {
	for _, statement := range SchemaStatements(es.eventTableName) {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.instruments.Error(ctx, logMsgSchemaFailed, err)
			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	return nil
}

// Query retrieves the events matching filter in sequence order.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	sqlQuery, args, buildErr := es.buildSelectQuery(filter)
	if buildErr != nil {
		es.instruments.Error(ctx, logMsgBuildQueryFailed, buildErr)
		return nil, buildErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.instruments.Debug(ctx, logMsgSQLExecuted+logActionQuery, logAttrQuery, sqlQuery)

	if queryErr != nil {
		es.instruments.Error(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionQuery, errorTypeDatabaseQuery)

		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			es.instruments.Warn(ctx, logMsgCloseRowsFailed, "error", closeErr.Error())
		}
	}()

	events := make(eventstore.StorableEvents, 0)

	for rows.Next() {
		event, scanErr := es.scanEvent(rows)
		if scanErr != nil {
			es.instruments.Error(ctx, logMsgScanRowFailed, scanErr)
			es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionQuery, errorTypeRowScan)

			return nil, scanErr
		}

		events = append(events, event)
	}

	if iterErr := rows.Err(); iterErr != nil {
		return nil, errors.Join(eventstore.ErrScanningDBRowFailed, iterErr)
	}

	es.instruments.RecordDuration(ctx, metricQueryDuration, duration, logActionQuery, instrument.StatusSuccess)
	es.instruments.Info(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, instrument.ToMilliseconds(duration),
	)

	return events, nil
}

func (es *EventStore) scanEvent(rows adapters.DBRows) (eventstore.StorableEvent, error) {
	var (
		rawEventID, eventType, rawAggregateID, rawOccurredAt, payload, metadata string
		sequenceNumber                                                          int64
	)

	if err := rows.Scan(
		&rawEventID, &eventType, &rawAggregateID, &rawOccurredAt, &payload, &metadata, &sequenceNumber,
	); err != nil {
		return eventstore.StorableEvent{}, errors.Join(eventstore.ErrScanningDBRowFailed, err)
	}

	eventID, eventIDErr := uuid.Parse(rawEventID)
	aggregateID, aggregateIDErr := uuid.Parse(rawAggregateID)
	occurredAt, occurredAtErr := time.Parse(occurredAtLayout, rawOccurredAt)

	if err := errors.Join(eventIDErr, aggregateIDErr, occurredAtErr); err != nil {
		return eventstore.StorableEvent{}, errors.Join(eventstore.ErrBuildingStorableEventFailed, err)
	}

	event, err := eventstore.BuildStorableEvent(
		eventID,
		eventType,
		aggregateID,
		occurredAt.UTC(),
		[]byte(payload),
		[]byte(metadata),
	)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(eventstore.ErrBuildingStorableEventFailed, err)
	}

	event.SequenceNumber = uint(sequenceNumber)

	return event, nil
}

// Append appends one or multiple events in a single statement.
// Events whose EventID is already stored are skipped.
func (es *EventStore) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	sqlQuery, args, buildErr := es.buildInsertQuery(allEvents)
	if buildErr != nil {
		es.instruments.Error(ctx, logMsgBuildQueryFailed, buildErr, logAttrEventCount, len(allEvents))
		return buildErr
	}

	start := time.Now()
	result, execErr := es.db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.instruments.Debug(ctx, logMsgSQLExecuted+logActionAppend, logAttrQuery, sqlQuery)

	if execErr != nil {
		es.instruments.Error(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionAppend, errorTypeDatabaseExec)
		es.instruments.RecordDuration(ctx, metricAppendDuration, duration, logActionAppend, instrument.StatusError)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.instruments.Error(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		es.instruments.Info(
			ctx,
			logMsgDuplicatesSkipped,
			logAttrEventCount, len(allEvents),
			logAttrRowsAffected, rowsAffected,
		)
	}

	es.instruments.RecordDuration(ctx, metricAppendDuration, duration, logActionAppend, instrument.StatusSuccess)
	es.instruments.Info(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, instrument.ToMilliseconds(duration),
	)

	return nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, []any, error) {
	selectStmt := goqu.Dialect(dialectSQLite).
		From(es.eventTableName).
		Prepared(true).
		Select(
			goqu.C(colEventID),
			goqu.C(colEventType),
			goqu.C(colAggregateID),
			goqu.C(colOccurredAt),
			goqu.C(colPayload),
			goqu.C(colMetadata),
			goqu.C(colSequenceNumber),
		).
		Order(goqu.C(colSequenceNumber).Asc())

	if where := whereExpressions(filter); len(where) > 0 {
		selectStmt = selectStmt.Where(where...)
	}

	sqlQuery, args, err := selectStmt.ToSQL()
	if err != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

func (es *EventStore) buildInsertQuery(events eventstore.StorableEvents) (string, []any, error) {
	rows := make([]any, 0, len(events))
	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventID:     event.EventID.String(),
			colEventType:   event.EventType,
			colAggregateID: event.AggregateID.String(),
			colOccurredAt:  formatOccurredAt(event.OccurredAt),
			colPayload:     string(event.PayloadJSON),
			colMetadata:    string(event.MetadataJSON),
		})
	}

	// the sqlite3 dialect renders this as INSERT OR IGNORE
	insertStmt := goqu.Dialect(dialectSQLite).
		Insert(es.eventTableName).
		Prepared(true).
		Rows(rows...).
		OnConflict(goqu.DoNothing())

	sqlQuery, args, err := insertStmt.ToSQL()
	if err != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

func whereExpressions(filter eventstore.Filter) []exp.Expression {
	expressions := make([]exp.Expression, 0)

	if ids := filter.AggregateIDs(); len(ids) > 0 {
		values := make([]string, 0, len(ids))
		for _, id := range ids {
			values = append(values, id.String())
		}

		expressions = append(expressions, goqu.C(colAggregateID).In(values))
	}

	if eventTypes := filter.EventTypes(); len(eventTypes) > 0 {
		expressions = append(expressions, goqu.C(colEventType).In(eventTypes))
	}

	if !filter.OccurredFrom().IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Gte(formatOccurredAt(filter.OccurredFrom())))
	}

	if !filter.OccurredUntil().IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Lte(formatOccurredAt(filter.OccurredUntil())))
	}

	if filter.SequenceNumberHigherThan() > 0 {
		expressions = append(expressions, goqu.C(colSequenceNumber).Gt(filter.SequenceNumberHigherThan()))
	}

	return expressions
}

func formatOccurredAt(t time.Time) string {
	return t.UTC().Format(occurredAtLayout)
}
