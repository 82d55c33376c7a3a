// Package sqliteengine provides a SQLite implementation of eventstore.EventStore on top of
// database/sql and the pure Go modernc.org/sqlite driver.
//
// It is meant for embedded use and tests. Appends are idempotent per event id (INSERT OR IGNORE),
// queries return events in sequence order. Timestamps are stored as fixed-width UTC text so that
// range filters compare correctly.
//
//	db, _ := sql.Open("sqlite", "file:events.db")
//	store, _ := sqliteengine.NewEventStore(db)
//	_ = store.EnsureSchema(ctx)
package sqliteengine
