package core

import (
	"time"

	"github.com/google/uuid"
)

// Identifiable is anything with an entity identity.
type Identifiable interface {
	ID() uuid.UUID
}

// Entity holds identity, timestamps and the buffer of recorded domain events.
// Aggregates embed it.
//
// An Entity is not safe for concurrent use; callers serialize writes to the same instance.
type Entity struct {
	id           uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
	clock        Clock
	domainEvents DomainEvents
}

type entityConfig struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	clock     Clock
}

// EntityOption configures NewEntity, mostly to rehydrate entities from storage.
type EntityOption func(*entityConfig)

// WithEntityID sets the entity id instead of generating one.
func WithEntityID(id uuid.UUID) EntityOption {
	return func(c *entityConfig) {
		c.id = id
	}
}

// WithCreatedAt sets the creation timestamp instead of "now".
func WithCreatedAt(t time.Time) EntityOption {
	return func(c *entityConfig) {
		c.createdAt = t
	}
}

// WithUpdatedAt sets the modification timestamp instead of "now".
func WithUpdatedAt(t time.Time) EntityOption {
	return func(c *entityConfig) {
		c.updatedAt = t
	}
}

// WithClock replaces time.Now for timestamps and recorded events.
func WithClock(clock Clock) EntityOption {
	return func(c *entityConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewEntity creates an Entity. Without options it gets a fresh id and both timestamps are set to the same "now".
func NewEntity(options ...EntityOption) Entity {
	config := entityConfig{clock: time.Now}

	for _, option := range options {
		option(&config)
	}

	if config.id == uuid.Nil {
		config.id = uuid.New()
	}

	now := config.clock().UTC()

	if config.createdAt.IsZero() {
		config.createdAt = now
	}

	if config.updatedAt.IsZero() {
		config.updatedAt = now
	}

	return Entity{
		id:           config.id,
		createdAt:    config.createdAt,
		updatedAt:    config.updatedAt,
		clock:        config.clock,
		domainEvents: make(DomainEvents, 0),
	}
}

// ID returns the entity id.
func (e *Entity) ID() uuid.UUID {
	return e.id
}

// CreatedAt returns the creation timestamp.
func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns the timestamp of the last modification.
func (e *Entity) UpdatedAt() time.Time {
	return e.updatedAt
}

// Touch sets UpdatedAt to the current time.
// A clock that runs behind the creation time never moves UpdatedAt before CreatedAt.
func (e *Entity) Touch() {
	now := e.Now()
	if now.Before(e.createdAt) {
		now = e.createdAt
	}

	e.updatedAt = now
}

// Record appends a domain event to the buffer.
func (e *Entity) Record(event DomainEvent) {
	e.domainEvents = append(e.domainEvents, event)
}

// DrainEvents returns a snapshot of the recorded events in insertion order.
// It does not clear the buffer; publishers call ClearEvents after a successful publish.
func (e *Entity) DrainEvents() DomainEvents {
	snapshot := make(DomainEvents, len(e.domainEvents))
	copy(snapshot, e.domainEvents)

	return snapshot
}

// ClearEvents removes all recorded events.
func (e *Entity) ClearEvents() {
	e.domainEvents = e.domainEvents[:0:0]
}

// Equals reports whether other has the same id, regardless of any other field.
func (e *Entity) Equals(other Identifiable) bool {
	if other == nil {
		return false
	}

	return e.id == other.ID()
}

// Now returns the current time of the entity's clock in UTC.
func (e *Entity) Now() time.Time {
	if e.clock == nil {
		return time.Now().UTC()
	}

	return e.clock().UTC()
}
