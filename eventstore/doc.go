// Package eventstore provides the engine-independent types for publishing domain events
// into an append-only SQL event log.
//
// Key types:
//   - StorableEvent: scalar DTO with JSON payload and metadata, keyed by a unique event id
//   - Filter: criteria for querying events back (aggregate ids, event types, time range, sequence)
//   - Appender, Querier, EventStore: implemented by postgresengine and sqliteengine
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		ForAggregateIDs(documentID).
//		AnyEventTypeOf(core.DocumentUpdatedEventType, core.DocumentDeletedEventType).
//		Finalize()
//
//	events, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
package eventstore
