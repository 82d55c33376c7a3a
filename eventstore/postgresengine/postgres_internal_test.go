package postgresengine

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

func Test_BuildSelectQuery_WithoutConditions(t *testing.T) {
	// arrange
	es := &EventStore{eventTableName: "events"}

	// act
	sqlQuery, args, err := es.buildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Equal(
		t,
		`SELECT CAST("event_id" AS TEXT), "event_type", CAST("aggregate_id" AS TEXT), "occurred_at", "payload", "metadata", "sequence_number" FROM "events" ORDER BY "sequence_number" ASC`,
		sqlQuery,
	)
	assert.Empty(t, args)
}

func Test_BuildSelectQuery_WithAllConditions(t *testing.T) {
	// arrange
	es := &EventStore{eventTableName: "document_events"}
	aggregateID := uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	filter := eventstore.BuildEventFilter().
		ForAggregateIDs(aggregateID).
		AnyEventTypeOf("document_created", "document_deleted").
		OccurredFrom(from).
		OccurredUntil(until).
		WithSequenceNumberHigherThan(7).
		Finalize()

	// act
	sqlQuery, args, err := es.buildSelectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "document_events"`)
	assert.Contains(t, sqlQuery, `("aggregate_id" IN ($1))`)
	assert.Contains(t, sqlQuery, `("event_type" IN ($2, $3))`)
	assert.Contains(t, sqlQuery, `("occurred_at" >= $4)`)
	assert.Contains(t, sqlQuery, `("occurred_at" <= $5)`)
	assert.Contains(t, sqlQuery, `("sequence_number" > $6)`)
	assert.True(t, strings.HasSuffix(sqlQuery, `ORDER BY "sequence_number" ASC`))
	require.Len(t, args, 6)
	assert.Equal(t, aggregateID.String(), args[0])
	assert.Equal(t, "document_created", args[1])
	assert.Equal(t, "document_deleted", args[2])
}

func Test_BuildInsertQuery_SkipsDuplicateEventIDs(t *testing.T) {
	// arrange
	es := &EventStore{eventTableName: "events"}
	first, err := eventstore.BuildStorableEventWithEmptyMetadata(
		uuid.New(), "document_created", uuid.New(), time.Now(), []byte(`{"document_id":"x"}`),
	)
	require.NoError(t, err)
	second, err := eventstore.BuildStorableEventWithEmptyMetadata(
		uuid.New(), "document_deleted", first.AggregateID, time.Now(), []byte(`{"document_id":"x"}`),
	)
	require.NoError(t, err)

	// act
	sqlQuery, args, err := es.buildInsertQuery(eventstore.StorableEvents{first, second})

	// assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sqlQuery, `INSERT INTO "events"`))
	assert.Contains(t, sqlQuery, `VALUES ($1, $2, $3, $4, $5, $6), ($7, $8, $9, $10, $11, $12)`)
	assert.True(t, strings.HasSuffix(sqlQuery, "ON CONFLICT DO NOTHING"))
	assert.Len(t, args, 12)
	assert.Contains(t, args, first.EventID.String())
	assert.Contains(t, args, second.EventID.String())
}

func Test_CreateTableStatement_UsesTableName(t *testing.T) {
	// act
	ddl := CreateTableStatement("tenant_events")

	// assert
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS tenant_events (")
	assert.Contains(t, ddl, "event_id UUID NOT NULL UNIQUE")
	assert.Contains(t, ddl, "tenant_events_aggregate_id_idx")
}
