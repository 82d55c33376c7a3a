// Package config loads database settings from DOCAGG_* environment variables and opens
// the connections the event store engines accept: a pgx pool, a database/sql or sqlx handle
// on lib/pq for PostgreSQL, and a database/sql handle on modernc.org/sqlite for SQLite.
//
// Unset variables fall back to defaults suited for a local development database.
package config
