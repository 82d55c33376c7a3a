package shell

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

var (
	// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails.
	ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

	// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails.
	ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")

	// ErrInvalidUTF8InEventData is returned when an event data key or value is not valid UTF-8.
	ErrInvalidUTF8InEventData = errors.New("event data is not valid UTF-8")
)

// StorableEventFrom converts a DomainEvent of aggregateID and its EventMetadata to a StorableEvent.
// The payload is a flat JSON object whose keys keep the order of the event data.
func StorableEventFrom(
	aggregateID uuid.UUID,
	event core.DomainEvent,
	metadata EventMetadata,
) (eventstore.StorableEvent, error) {

	payloadJSON, err := marshalEventData(event.Data())
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(
		event.EventID(),
		event.EventType(),
		aggregateID,
		event.OccurredAt(),
		payloadJSON,
		metadataJSON,
	)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// StorableEventsFrom converts all events of one aggregate. Each event starts its own causation chain.
func StorableEventsFrom(aggregateID uuid.UUID, events core.DomainEvents) (eventstore.StorableEvents, error) {
	storableEvents := make(eventstore.StorableEvents, 0, len(events))

	for _, event := range events {
		storableEvent, err := StorableEventFrom(aggregateID, event, MetadataFor(event.EventID()))
		if err != nil {
			return nil, err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return storableEvents, nil
}

func marshalEventData(data core.EventData) ([]byte, error) {
	stream := jsoniter.ConfigFastest.BorrowStream(nil)
	defer jsoniter.ConfigFastest.ReturnStream(stream)

	stream.WriteObjectStart()

	for i, datum := range data {
		if !utf8.ValidString(datum.Key) || !utf8.ValidString(datum.Value) {
			return nil, fmt.Errorf("%w: key %q", ErrInvalidUTF8InEventData, datum.Key)
		}

		if i > 0 {
			stream.WriteMore()
		}

		stream.WriteObjectField(datum.Key)
		stream.WriteString(datum.Value)
	}

	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}
