package sqliteengine_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore/sqliteengine"
)

func newInMemoryStore(t *testing.T, options ...sqliteengine.Option) *sqliteengine.EventStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	es, err := sqliteengine.NewEventStore(db, options...)
	require.NoError(t, err)
	require.NoError(t, es.EnsureSchema(context.Background()))

	return es
}

func buildEvent(t *testing.T, eventType string, aggregateID uuid.UUID, occurredAt time.Time) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEvent(
		uuid.New(),
		eventType,
		aggregateID,
		occurredAt,
		[]byte(`{"document_id":"`+aggregateID.String()+`","user_id":"u"}`),
		[]byte(`{"message_id":"m"}`),
	)
	require.NoError(t, err)

	return event
}

func Test_NewEventStore_NilConnection(t *testing.T) {
	// act
	es, err := sqliteengine.NewEventStore(nil)

	// assert
	assert.Nil(t, es)
	assert.ErrorIs(t, err, eventstore.ErrNilDatabaseConnection)
}

func Test_NewEventStore_EmptyTableName(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// act
	es, err := sqliteengine.NewEventStore(db, sqliteengine.WithTableName(""))

	// assert
	assert.Nil(t, es)
	assert.ErrorIs(t, err, eventstore.ErrEmptyEventsTableName)
}

func Test_NewEventStore_InvalidTableName(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	// act
	es, err := sqliteengine.NewEventStore(db, sqliteengine.WithTableName(`events"; DROP TABLE x; --`))

	// assert
	assert.Nil(t, es)
	assert.ErrorIs(t, err, eventstore.ErrInvalidEventsTableName)
}

func Test_EventStore_AppendAndQuery_RoundTrip(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := newInMemoryStore(t, sqliteengine.WithTableName("document_events"))
	aggregateID := uuid.New()
	occurredAt := time.Date(2025, 3, 4, 10, 11, 12, 123456000, time.UTC)
	created := buildEvent(t, "document_created", aggregateID, occurredAt)
	updated := buildEvent(t, "document_updated", aggregateID, occurredAt.Add(time.Second))

	// act
	appendErr := es.Append(ctx, created, updated)
	events, queryErr := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, appendErr)
	require.NoError(t, queryErr)
	require.Len(t, events, 2)
	assert.Equal(t, created.EventID, events[0].EventID)
	assert.Equal(t, updated.EventID, events[1].EventID)
	assert.Equal(t, "document_created", events[0].EventType)
	assert.Equal(t, aggregateID, events[0].AggregateID)
	assert.True(t, occurredAt.Equal(events[0].OccurredAt))
	assert.JSONEq(t, string(created.PayloadJSON), string(events[0].PayloadJSON))
	assert.JSONEq(t, string(created.MetadataJSON), string(events[0].MetadataJSON))
	assert.Less(t, events[0].SequenceNumber, events[1].SequenceNumber)
}

func Test_EventStore_Append_SkipsDuplicateEventIDs(t *testing.T) {
	// arrange
	ctx := context.Background()
	es := newInMemoryStore(t)
	event := buildEvent(t, "document_created", uuid.New(), time.Now())
	require.NoError(t, es.Append(ctx, event))

	// act
	err := es.Append(ctx, event)

	// assert
	require.NoError(t, err)
	events, queryErr := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, queryErr)
	assert.Len(t, events, 1)
}

func Test_EventStore_Query_Filters(t *testing.T) {
	ctx := context.Background()
	es := newInMemoryStore(t)
	documentA := uuid.New()
	documentB := uuid.New()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	createdA := buildEvent(t, "document_created", documentA, base)
	createdB := buildEvent(t, "document_created", documentB, base.Add(time.Hour))
	deletedA := buildEvent(t, "document_deleted", documentA, base.Add(2*time.Hour))
	require.NoError(t, es.Append(ctx, createdA, createdB, deletedA))

	all, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)
	require.Len(t, all, 3)

	testCases := []struct {
		name     string
		filter   eventstore.Filter
		expected []uuid.UUID
	}{
		{
			name:     "by aggregate id",
			filter:   eventstore.BuildEventFilter().ForAggregateIDs(documentA).Finalize(),
			expected: []uuid.UUID{createdA.EventID, deletedA.EventID},
		},
		{
			name:     "by event type",
			filter:   eventstore.BuildEventFilter().AnyEventTypeOf("document_created").Finalize(),
			expected: []uuid.UUID{createdA.EventID, createdB.EventID},
		},
		{
			name: "by aggregate id and event type",
			filter: eventstore.BuildEventFilter().
				ForAggregateIDs(documentA, documentB).
				AnyEventTypeOf("document_deleted").
				Finalize(),
			expected: []uuid.UUID{deletedA.EventID},
		},
		{
			name:     "by occurred at range",
			filter:   eventstore.BuildEventFilter().OccurredFrom(base.Add(time.Hour)).OccurredUntil(base.Add(time.Hour)).Finalize(),
			expected: []uuid.UUID{createdB.EventID},
		},
		{
			name:     "by sequence number",
			filter:   eventstore.BuildEventFilter().WithSequenceNumberHigherThan(all[0].SequenceNumber).Finalize(),
			expected: []uuid.UUID{createdB.EventID, deletedA.EventID},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			events, queryErr := es.Query(ctx, tc.filter)

			// assert
			require.NoError(t, queryErr)
			actual := make([]uuid.UUID, 0, len(events))
			for _, event := range events {
				actual = append(actual, event.EventID)
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func Test_EventStore_Query_FailsWithoutSchema(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	es, err := sqliteengine.NewEventStore(db)
	require.NoError(t, err)

	// act
	events, queryErr := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.Nil(t, events)
	assert.ErrorIs(t, queryErr, eventstore.ErrQueryingEventsFailed)
}

func Test_EventStore_Append_FailsWithoutSchema(t *testing.T) {
	// arrange
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	es, err := sqliteengine.NewEventStore(db)
	require.NoError(t, err)

	// act
	appendErr := es.Append(context.Background(), buildEvent(t, "document_created", uuid.New(), time.Now()))

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrAppendingEventFailed)
}
