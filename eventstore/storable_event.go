package eventstore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidPayloadJSON is returned when the payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when the metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

	// ErrEmptyEventType is returned when a StorableEvent is built without an event type.
	ErrEmptyEventType = errors.New("event type must not be empty")

	// ErrNilEventID is returned when a StorableEvent is built without an event id.
	ErrNilEventID = errors.New("event id must not be nil")
)

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is a DTO (data transfer object) used by the engines to append events and query them back.
//
// It is built on scalars to be completely agnostic of the implementation of domain events in the client code.
//
// While its properties are exported, it should only be constructed with BuildStorableEvent
// or BuildStorableEventWithEmptyMetadata. SequenceNumber is assigned by the engine and is
// only set on events returned by Query.
type StorableEvent struct {
	EventID        uuid.UUID
	EventType      string
	AggregateID    uuid.UUID
	OccurredAt     time.Time
	PayloadJSON    []byte
	MetadataJSON   []byte
	SequenceNumber uint
}

// BuildStorableEvent is a factory method for StorableEvent.
//
// It returns an error if the event id is nil, the event type is empty,
// or payloadJSON or metadataJSON are not valid JSON.
func BuildStorableEvent(
	eventID uuid.UUID,
	eventType string,
	aggregateID uuid.UUID,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (StorableEvent, error) {

	if eventID == uuid.Nil {
		return StorableEvent{}, ErrNilEventID
	}

	if eventType == "" {
		return StorableEvent{}, ErrEmptyEventType
	}

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return StorableEvent{}, ErrInvalidMetadataJSON
	}

	return StorableEvent{
		EventID:      eventID,
		EventType:    eventType,
		AggregateID:  aggregateID,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildStorableEventWithEmptyMetadata is a factory method for StorableEvent.
//
// It creates valid empty JSON for MetadataJSON.
func BuildStorableEventWithEmptyMetadata(
	eventID uuid.UUID,
	eventType string,
	aggregateID uuid.UUID,
	occurredAt time.Time,
	payloadJSON []byte,
) (StorableEvent, error) {

	return BuildStorableEvent(eventID, eventType, aggregateID, occurredAt, payloadJSON, []byte("{}"))
}
