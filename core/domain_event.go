package core

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// EventDatum is one key/value pair of an event payload.
type EventDatum struct {
	Key   string
	Value string
}

// EventData is the ordered payload of a DomainEvent.
// All values are rendered as strings so that payloads serialize the same way regardless of field types.
type EventData []EventDatum

// D builds an EventDatum.
func D(key, value string) EventDatum {
	return EventDatum{Key: key, Value: value}
}

// Get returns the value for key and whether it was present.
func (d EventData) Get(key string) (string, bool) {
	for _, datum := range d {
		if datum.Key == key {
			return datum.Value, true
		}
	}

	return "", false
}

// Keys returns the keys in insertion order.
func (d EventData) Keys() []string {
	keys := make([]string, 0, len(d))
	for _, datum := range d {
		keys = append(keys, datum.Key)
	}

	return keys
}

// Map returns the payload as an unordered map.
func (d EventData) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, datum := range d {
		m[datum.Key] = datum.Value
	}

	return m
}

func (d EventData) clone() EventData {
	if d == nil {
		return EventData{}
	}

	c := make(EventData, len(d))
	copy(c, d)

	return c
}

// DomainEvent is an immutable record of something that happened to an entity.
//
// It should only be constructed with BuildDomainEvent or RebuildDomainEvent.
type DomainEvent struct {
	eventID    uuid.UUID
	eventType  string
	data       EventData
	occurredAt OccurredAt
}

// BuildDomainEvent creates a new DomainEvent with a fresh event id.
func BuildDomainEvent(eventType string, data EventData, occurredAt time.Time) DomainEvent {
	return DomainEvent{
		eventID:    uuid.New(),
		eventType:  eventType,
		data:       data.clone(),
		occurredAt: ToOccurredAt(occurredAt),
	}
}

// RebuildDomainEvent reconstructs a DomainEvent that was created earlier, e.g. when reading it back from storage.
func RebuildDomainEvent(eventID uuid.UUID, eventType string, data EventData, occurredAt time.Time) DomainEvent {
	return DomainEvent{
		eventID:    eventID,
		eventType:  eventType,
		data:       data.clone(),
		occurredAt: ToOccurredAt(occurredAt),
	}
}

// EventID returns the globally unique id of this event.
func (e DomainEvent) EventID() uuid.UUID {
	return e.eventID
}

// EventType returns the string identifier for this event type.
func (e DomainEvent) EventType() string {
	return e.eventType
}

// Data returns a copy of the event payload.
func (e DomainEvent) Data() EventData {
	return e.data.clone()
}

// OccurredAt returns when this event occurred.
func (e DomainEvent) OccurredAt() time.Time {
	return e.occurredAt
}
