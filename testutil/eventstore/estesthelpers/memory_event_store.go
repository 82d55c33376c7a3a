package estesthelpers

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

// MemoryEventStore is an in-memory eventstore.EventStore with the same semantics as the SQL engines:
// appends are idempotent per event id and queries return events in sequence order.
type MemoryEventStore struct {
	events []eventstore.StorableEvent
	ids    map[uuid.UUID]struct{}
	mu     sync.Mutex
}

// NewMemoryEventStore creates an empty MemoryEventStore.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{ids: make(map[uuid.UUID]struct{})}
}

// Append implements eventstore.Appender.
func (s *MemoryEventStore) Append(
	_ context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range append([]eventstore.StorableEvent{event}, additionalEvents...) {
		if _, exists := s.ids[e.EventID]; exists {
			continue
		}

		e.SequenceNumber = uint(len(s.events) + 1)
		s.ids[e.EventID] = struct{}{}
		s.events = append(s.events, e)
	}

	return nil
}

// Query implements eventstore.Querier.
func (s *MemoryEventStore) Query(_ context.Context, filter eventstore.Filter) (eventstore.StorableEvents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matching := make(eventstore.StorableEvents, 0)

	for _, e := range s.events {
		if matches(filter, e) {
			matching = append(matching, e)
		}
	}

	return matching, nil
}

// Count returns the number of stored events.
func (s *MemoryEventStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

func matches(filter eventstore.Filter, e eventstore.StorableEvent) bool {
	if ids := filter.AggregateIDs(); len(ids) > 0 && !slices.Contains(ids, e.AggregateID) {
		return false
	}

	if types := filter.EventTypes(); len(types) > 0 && !slices.Contains(types, e.EventType) {
		return false
	}

	if from := filter.OccurredFrom(); !from.IsZero() && e.OccurredAt.Before(from) {
		return false
	}

	if until := filter.OccurredUntil(); !until.IsZero() && e.OccurredAt.After(until) {
		return false
	}

	return e.SequenceNumber > filter.SequenceNumberHigherThan()
}
