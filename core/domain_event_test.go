package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

func Test_BuildDomainEvent(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 5, 4, 3, 2, 1, 123456789, time.FixedZone("UTC+2", 2*60*60))
	data := core.EventData{core.D("b", "2"), core.D("a", "1")}

	// act
	event := core.BuildDomainEvent("something_happened", data, occurredAt)
	data[0] = core.D("b", "changed")

	// assert
	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "something_happened", event.EventType())
	assert.Equal(t, []string{"b", "a"}, event.Data().Keys())
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, event.Data().Map())
	assert.Equal(t, time.Date(2025, 5, 4, 1, 2, 1, 123456000, time.UTC), event.OccurredAt())
}

func Test_BuildDomainEvent_GeneratesUniqueIDs(t *testing.T) {
	// act
	first := core.BuildDomainEvent("x", nil, time.Now())
	second := core.BuildDomainEvent("x", nil, time.Now())

	// assert
	assert.NotEqual(t, first.EventID(), second.EventID())
	assert.NotNil(t, first.Data())
}

func Test_RebuildDomainEvent_KeepsEventID(t *testing.T) {
	// arrange
	eventID := uuid.New()

	// act
	event := core.RebuildDomainEvent(eventID, "x", core.EventData{core.D("k", "v")}, time.Now())

	// assert
	assert.Equal(t, eventID, event.EventID())

	value, ok := event.Data().Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)

	_, ok = event.Data().Get("missing")
	assert.False(t, ok)
}

func Test_DomainEvent_DataIsACopy(t *testing.T) {
	// arrange
	event := core.BuildDomainEvent("x", core.EventData{core.D("k", "v")}, time.Now())

	// act
	data := event.Data()
	data[0] = core.D("k", "tampered")

	// assert
	value, _ := event.Data().Get("k")
	assert.Equal(t, "v", value)
}
