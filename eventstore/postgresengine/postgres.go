package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore/internal/adapters"
	"github.com/AntonStoeckl/document-aggregates-go/internal/instrument"
)

const (
	defaultEventTableName          = "events"
	dialectPostgres                = "postgres"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgRowsIterationFailed      = "failed to iterate database rows"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgDuplicatesSkipped        = "duplicate events skipped"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "
	logAttrQuery                   = "query"
	logAttrEventType               = "event_type"
	logAttrEventCount              = "event_count"
	logAttrDurationMS              = "duration_ms"
	logAttrRowsAffected            = "rows_affected"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	metricQueryDuration            = "eventstore_query_duration_seconds"
	metricAppendDuration           = "eventstore_append_duration_seconds"
	metricEventsQueried            = "eventstore_events_queried"
	metricEventsAppended           = "eventstore_events_appended"
	metricDatabaseErrors           = "eventstore_database_errors_total"
	errorTypeBuildQuery            = "build_query"
	errorTypeDatabaseQuery         = "database_query"
	errorTypeDatabaseExec          = "database_exec"
	errorTypeRowScan               = "row_scan"
	colEventID                     = "event_id"
	colEventType                   = "event_type"
	colAggregateID                 = "aggregate_id"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	castText                       = "TEXT"
)

// ErrReplicaRequiresPGXPool is returned by WithReplica for stores not backed by a pgxpool.Pool.
var ErrReplicaRequiresPGXPool = errors.New("a replica can only be configured for a pgxpool.Pool")

type sqlQueryString = string

// EventStore appends and queries storable events in a PostgreSQL table.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	instruments    instrument.Instruments
}

type queryResultRow struct {
	eventID        string
	eventType      string
	aggregateID    string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber int64
}

// NewEventStoreFromPGXPool creates a new EventStore using a pgx Pool with optional configuration.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromSQLDB creates a new EventStore using a sql.DB (lib/pq) with optional configuration.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates a new EventStore using a sqlx.DB with optional configuration.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// CreateTableStatement returns the DDL for an events table with the given name.
func CreateTableStatement(tableName string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_id UUID NOT NULL UNIQUE,
	event_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS %[1]s_aggregate_id_idx ON %[1]s (aggregate_id);
CREATE INDEX IF NOT EXISTS %[1]s_event_type_idx ON %[1]s (event_type);`, tableName)
}

// EnsureSchema creates the events table and its indexes if they do not exist.
func (es *EventStore) EnsureSchema(ctx context.Context) error {
	if _, err := es.db.Exec(ctx, CreateTableStatement(es.eventTableName)); err != nil {
		return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
	}

	return nil
}

// Query retrieves the events matching filter in sequence order.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	sqlQuery, args, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.instruments.Error(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionQuery, errorTypeBuildQuery)

		return nil, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		es.instruments.Error(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionQuery, errorTypeDatabaseQuery)
		es.instruments.RecordDuration(ctx, metricQueryDuration, duration, logActionQuery, instrument.StatusError)

		return nil, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	events, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionQuery, errorTypeRowScan)
		return nil, scanErr
	}

	es.instruments.RecordDuration(ctx, metricQueryDuration, duration, logActionQuery, instrument.StatusSuccess)
	es.instruments.RecordValue(ctx, metricEventsQueried, float64(len(events)), logActionQuery)
	es.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, instrument.ToMilliseconds(duration),
	)

	return events, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.instruments.Warn(ctx, logMsgCloseRowsFailed, "error", closeErr.Error())
	}
}

func (es *EventStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (eventstore.StorableEvents, error) {
	events := make(eventstore.StorableEvents, 0)
	result := queryResultRow{}

	for rows.Next() {
		scanErr := rows.Scan(
			&result.eventID,
			&result.eventType,
			&result.aggregateID,
			&result.occurredAt,
			&result.payload,
			&result.metadata,
			&result.sequenceNumber,
		)
		if scanErr != nil {
			es.instruments.Error(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		event, buildErr := es.toStorableEvent(result)
		if buildErr != nil {
			es.instruments.Error(ctx, logMsgBuildStorableEventFailed, buildErr, logAttrEventType, result.eventType)
			return nil, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event)
	}

	if iterErr := rows.Err(); iterErr != nil {
		es.instruments.Error(ctx, logMsgRowsIterationFailed, iterErr)
		return nil, errors.Join(eventstore.ErrScanningDBRowFailed, iterErr)
	}

	return events, nil
}

func (es *EventStore) toStorableEvent(row queryResultRow) (eventstore.StorableEvent, error) {
	eventID, eventIDErr := uuid.Parse(row.eventID)
	if eventIDErr != nil {
		return eventstore.StorableEvent{}, eventIDErr
	}

	aggregateID, aggregateIDErr := uuid.Parse(row.aggregateID)
	if aggregateIDErr != nil {
		return eventstore.StorableEvent{}, aggregateIDErr
	}

	// the driver owns the scanned buffers, so they are copied
	event, err := eventstore.BuildStorableEvent(
		eventID,
		row.eventType,
		aggregateID,
		row.occurredAt.UTC(),
		append([]byte(nil), row.payload...),
		append([]byte(nil), row.metadata...),
	)
	if err != nil {
		return eventstore.StorableEvent{}, err
	}

	event.SequenceNumber = uint(row.sequenceNumber)

	return event, nil
}

// Append appends one or multiple events in a single statement.
// Events whose EventID is already stored are skipped, so appending is safe to retry.
func (es *EventStore) Append(
	ctx context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	sqlQuery, args, buildQueryErr := es.buildInsertQuery(allEvents)
	if buildQueryErr != nil {
		es.instruments.Error(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(allEvents))
		es.instruments.IncrementError(ctx, metricDatabaseErrors, logActionAppend, errorTypeBuildQuery)

		return buildQueryErr
	}

	start := time.Now()
	result, execErr := es.db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	es.logQueryWithDuration(ctx, sqlQuery, logActionAppend, duration)

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
		es.logOperation(
			ctx,
			logMsgDuplicatesSkipped,
			logAttrEventCount, len(allEvents),
			logAttrRowsAffected, rowsAffected,
		)
	}

	es.instruments.RecordDuration(ctx, metricAppendDuration, duration, logActionAppend, instrument.StatusSuccess)
	es.instruments.RecordValue(ctx, metricEventsAppended, float64(rowsAffected), logActionAppend)
	es.logOperation(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrDurationMS, instrument.ToMilliseconds(duration),
	)

	return nil
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, []any, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Prepared(true).
		Select(
			goqu.Cast(goqu.C(colEventID), castText),
			goqu.C(colEventType),
			goqu.Cast(goqu.C(colAggregateID), castText),
			goqu.C(colOccurredAt),
			goqu.C(colPayload),
			goqu.C(colMetadata),
			goqu.C(colSequenceNumber),
		).
		Order(goqu.C(colSequenceNumber).Asc())

	if where := es.whereExpressions(filter); len(where) > 0 {
		selectStmt = selectStmt.Where(where...)
	}

	sqlQuery, args, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

func (es *EventStore) buildInsertQuery(events eventstore.StorableEvents) (sqlQueryString, []any, error) {
	rows := make([]any, 0, len(events))
	for _, event := range events {
		rows = append(rows, goqu.Record{
			colEventID:     event.EventID.String(),
			colEventType:   event.EventType,
			colAggregateID: event.AggregateID.String(),
			colOccurredAt:  event.OccurredAt.UTC(),
			colPayload:     string(event.PayloadJSON),
			colMetadata:    string(event.MetadataJSON),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(es.eventTableName).
		Prepared(true).
		Rows(rows...).
		OnConflict(goqu.DoNothing())

	sqlQuery, args, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", nil, errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

func (es *EventStore) whereExpressions(filter eventstore.Filter) []exp.Expression {
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
		expressions = append(expressions, goqu.C(colOccurredAt).Gte(filter.OccurredFrom().UTC()))
	}

	if !filter.OccurredUntil().IsZero() {
		expressions = append(expressions, goqu.C(colOccurredAt).Lte(filter.OccurredUntil().UTC()))
	}

	if filter.SequenceNumberHigherThan() > 0 {
		expressions = append(expressions, goqu.C(colSequenceNumber).Gt(filter.SequenceNumberHigherThan()))
	}

	return expressions
}

func (es *EventStore) logQueryWithDuration(ctx context.Context, sqlQuery, action string, duration time.Duration) {
	es.instruments.Debug(
		ctx,
		logMsgSQLExecuted+action,
		logAttrDurationMS, instrument.ToMilliseconds(duration),
		logAttrQuery, sqlQuery,
	)
}

func (es *EventStore) logOperation(ctx context.Context, action string, args ...any) {
	es.instruments.Info(ctx, logMsgOperation+action, args...)
}
