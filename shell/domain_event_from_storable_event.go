package shell

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent back to the DomainEvent it was built from.
// The payload keys keep their stored order.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	if !core.IsKnownEventType(storableEvent.EventType) {
		return core.DomainEvent{}, errors.Join(
			ErrMappingToDomainEventFailed,
			ErrMappingToDomainEventUnknownEventType,
			fmt.Errorf("event type %q", storableEvent.EventType),
		)
	}

	data, err := unmarshalEventData(storableEvent.PayloadJSON)
	if err != nil {
		return core.DomainEvent{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return core.RebuildDomainEvent(
		storableEvent.EventID,
		storableEvent.EventType,
		data,
		storableEvent.OccurredAt,
	), nil
}

func unmarshalEventData(payloadJSON []byte) (core.EventData, error) {
	iter := jsoniter.ConfigFastest.BorrowIterator(payloadJSON)
	defer jsoniter.ConfigFastest.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.New("payload is not a JSON object")
	}

	data := make(core.EventData, 0)

	iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
		if iter.WhatIsNext() != jsoniter.StringValue {
			iter.ReportError("read payload", fmt.Sprintf("value of %q is not a string", key))
			return false
		}

		data = append(data, core.D(key, iter.ReadString()))

		return true
	})

	if iter.Error != nil {
		return nil, iter.Error
	}

	return data, nil
}
