// Package postgresengine provides a PostgreSQL implementation of eventstore.EventStore.
//
// It works with pgxpool.Pool, database/sql (lib/pq) or sqlx connections. Appends are idempotent
// per event id (ON CONFLICT DO NOTHING), queries return events in sequence order.
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		db,
//		postgresengine.WithTableName("document_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	err := store.Append(ctx, event)
//	events, err := store.Query(ctx, filter)
package postgresengine
