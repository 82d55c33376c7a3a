// Package adapters puts pgxpool.Pool, sql.DB and sqlx.DB behind one small interface,
// so the engines build their statements once and run them on any of these connections.
package adapters
