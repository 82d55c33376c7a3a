package eventstore

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Filter selects stored events. All set criteria must match; a criterion that is not set matches everything.
//
// It should only be constructed with BuildEventFilter.
type Filter struct {
	aggregateIDs             []uuid.UUID
	eventTypes               []string
	occurredFrom             time.Time
	occurredUntil            time.Time
	sequenceNumberHigherThan uint
}

// AggregateIDs returns the aggregate ids of which any must match.
func (f Filter) AggregateIDs() []uuid.UUID {
	return f.aggregateIDs
}

// EventTypes returns the event types of which any must match.
func (f Filter) EventTypes() []string {
	return f.eventTypes
}

// OccurredFrom returns the inclusive lower bound of the occurred-at range, zero if unbounded.
func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// OccurredUntil returns the inclusive upper bound of the occurred-at range, zero if unbounded.
func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// SequenceNumberHigherThan returns the exclusive lower bound for sequence numbers, 0 if unbounded.
func (f Filter) SequenceNumberHigherThan() uint {
	return f.sequenceNumberHigherThan
}

// IsEmpty reports whether the filter matches every event.
func (f Filter) IsEmpty() bool {
	return len(f.aggregateIDs) == 0 &&
		len(f.eventTypes) == 0 &&
		f.occurredFrom.IsZero() &&
		f.occurredUntil.IsZero() &&
		f.sequenceNumberHigherThan == 0
}

// FilterBuilder builds a Filter. It is a value type, so every step returns a modified copy.
type FilterBuilder struct {
	filter Filter
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize or MatchingAnyEvent.
func BuildEventFilter() FilterBuilder {
	return FilterBuilder{}
}

// MatchingAnyEvent directly creates an empty Filter.
func (fb FilterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// ForAggregateIDs restricts the filter to events of any of the given aggregates.
//
// It sanitizes the input:
//   - removing nil ids
//   - sorting the ids
//   - removing duplicate ids
func (fb FilterBuilder) ForAggregateIDs(aggregateID uuid.UUID, aggregateIDs ...uuid.UUID) FilterBuilder {
	all := append(slices.Clone(fb.filter.aggregateIDs), aggregateID)
	all = append(all, aggregateIDs...)
	all = slices.DeleteFunc(all, func(id uuid.UUID) bool { return id == uuid.Nil })
	slices.SortFunc(all, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	fb.filter.aggregateIDs = slices.Clip(slices.Compact(all))

	return fb
}

// AnyEventTypeOf restricts the filter to events of any of the given types.
//
// It sanitizes the input:
//   - removing empty event types ("")
//   - sorting the event types
//   - removing duplicate event types
func (fb FilterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) FilterBuilder {
	all := append(slices.Clone(fb.filter.eventTypes), eventType)
	all = append(all, eventTypes...)
	all = slices.DeleteFunc(all, func(e string) bool { return e == "" })
	slices.Sort(all)
	fb.filter.eventTypes = slices.Clip(slices.Compact(all))

	return fb
}

// OccurredFrom sets the inclusive lower bound of the occurred-at range.
func (fb FilterBuilder) OccurredFrom(t time.Time) FilterBuilder {
	fb.filter.occurredFrom = t

	return fb
}

// OccurredUntil sets the inclusive upper bound of the occurred-at range.
func (fb FilterBuilder) OccurredUntil(t time.Time) FilterBuilder {
	fb.filter.occurredUntil = t

	return fb
}

// WithSequenceNumberHigherThan only matches events appended after the given sequence number.
func (fb FilterBuilder) WithSequenceNumberHigherThan(sequenceNumber uint) FilterBuilder {
	fb.filter.sequenceNumberHigherThan = sequenceNumber

	return fb
}

// Finalize returns the Filter.
func (fb FilterBuilder) Finalize() Filter {
	return fb.filter
}
