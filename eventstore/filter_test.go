package eventstore_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	aggregateID := uuid.MustParse("3f0e0e52-6f43-4a43-9d7e-2f7f0b7f6a01")
	timeFrom := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	timeUntil := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, f eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.True(t, f.IsEmpty())
				assert.Empty(t, f.AggregateIDs())
				assert.Empty(t, f.EventTypes())
			},
		},
		{
			name: "finalize_without_conditions_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.True(t, f.IsEmpty())
			},
		},
		{
			name: "aggregate_ids_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().ForAggregateIDs(aggregateID).Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.False(t, f.IsEmpty())
				assert.Equal(t, []uuid.UUID{aggregateID}, f.AggregateIDs())
				assert.Empty(t, f.EventTypes())
			},
		},
		{
			name: "event_types_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().AnyEventTypeOf("document_updated", "document_created").Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"document_created", "document_updated"}, f.EventTypes())
			},
		},
		{
			name: "occurred_range_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().OccurredFrom(timeFrom).OccurredUntil(timeUntil).Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, timeFrom, f.OccurredFrom())
				assert.Equal(t, timeUntil, f.OccurredUntil())
				assert.False(t, f.IsEmpty())
			},
		},
		{
			name: "sequence_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().WithSequenceNumberHigherThan(12345).Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, uint(12345), f.SequenceNumberHigherThan())
				assert.True(t, f.OccurredFrom().IsZero())
				assert.False(t, f.IsEmpty())
			},
		},
		{
			name: "all_conditions",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					ForAggregateIDs(aggregateID).
					AnyEventTypeOf("document_deleted").
					OccurredFrom(timeFrom).
					OccurredUntil(timeUntil).
					WithSequenceNumberHigherThan(3).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []uuid.UUID{aggregateID}, f.AggregateIDs())
				assert.Equal(t, []string{"document_deleted"}, f.EventTypes())
				assert.Equal(t, timeFrom, f.OccurredFrom())
				assert.Equal(t, timeUntil, f.OccurredUntil())
				assert.Equal(t, uint(3), f.SequenceNumberHigherThan())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_InputSanitization(t *testing.T) {
	first := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	second := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	t.Run("aggregate_ids_are_sorted_deduplicated_and_nil_free", func(t *testing.T) {
		// act
		f := eventstore.BuildEventFilter().ForAggregateIDs(second, uuid.Nil, first, second).Finalize()

		// assert
		assert.Equal(t, []uuid.UUID{first, second}, f.AggregateIDs())
	})

	t.Run("only_nil_aggregate_ids_leave_filter_empty", func(t *testing.T) {
		// act
		f := eventstore.BuildEventFilter().ForAggregateIDs(uuid.Nil).Finalize()

		// assert
		assert.True(t, f.IsEmpty())
	})

	t.Run("event_types_are_sorted_deduplicated_and_non_empty", func(t *testing.T) {
		// act
		f := eventstore.BuildEventFilter().AnyEventTypeOf("tenant_updated", "", "document_created", "tenant_updated").Finalize()

		// assert
		assert.Equal(t, []string{"document_created", "tenant_updated"}, f.EventTypes())
	})

	t.Run("repeated_calls_accumulate", func(t *testing.T) {
		// act
		f := eventstore.BuildEventFilter().
			ForAggregateIDs(second).
			ForAggregateIDs(first).
			AnyEventTypeOf("b").
			AnyEventTypeOf("a").
			Finalize()

		// assert
		assert.Equal(t, []uuid.UUID{first, second}, f.AggregateIDs())
		assert.Equal(t, []string{"a", "b"}, f.EventTypes())
	})
}

func Test_FilterBuilder_IsValueType(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().AnyEventTypeOf("document_created")

	// act
	extended := base.AnyEventTypeOf("document_deleted").Finalize()
	original := base.Finalize()

	// assert
	assert.Equal(t, []string{"document_created"}, original.EventTypes())
	assert.Equal(t, []string{"document_created", "document_deleted"}, extended.EventTypes())
}
