package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

var (
	// ErrMappingToEventMetadataFailed is returned when metadata conversion fails.
	ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")
)

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the message that caused this event.
type CausationID = string

// CorrelationID represents the ID correlating related events.
type CorrelationID = string

// EventMetadata contains event tracking information.
type EventMetadata struct {
	MessageID     MessageID     `json:"message_id"`
	CausationID   CausationID   `json:"causation_id"`
	CorrelationID CorrelationID `json:"correlation_id"`
}

// BuildEventMetadata creates EventMetadata from UUID values.
func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// MetadataFor returns the metadata of an event that starts a new causation chain:
// the event id is the message id, the causation id and the correlation id.
func MetadataFor(eventID uuid.UUID) EventMetadata {
	return BuildEventMetadata(eventID, eventID, eventID)
}

// EventMetadataFrom extracts EventMetadata from a StorableEvent.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	metadata := new(EventMetadata)

	if err := jsoniter.ConfigFastest.Unmarshal(storableEvent.MetadataJSON, metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return *metadata, nil
}
