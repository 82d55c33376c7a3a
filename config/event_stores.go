package config

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore/sqliteengine"
)

// NewPostgresEventStore opens the pgx pools and creates an event store on EventsTableName.
// A configured replica DSN adds a replica pool for eventually consistent queries.
// The returned close function releases all pools.
func NewPostgresEventStore(
	ctx context.Context,
	cfg Config,
	options ...postgresengine.Option,
) (*postgresengine.EventStore, func(), error) {
	primary, err := cfg.Postgres.NewPGXPool(ctx)
	if err != nil {
		return nil, nil, err
	}

	pools := []*pgxpool.Pool{primary}
	closeAll := func() {
		for _, pool := range pools {
			pool.Close()
		}
	}

	storeOptions := []postgresengine.Option{postgresengine.WithTableName(cfg.EventsTableName)}

	if cfg.Postgres.ReplicaDSN != "" {
		replica, replicaErr := cfg.Postgres.NewReplicaPGXPool(ctx)
		if replicaErr != nil {
			closeAll()
			return nil, nil, replicaErr
		}

		pools = append(pools, replica)
		storeOptions = append(storeOptions, postgresengine.WithReplica(replica))
	}

	es, err := postgresengine.NewEventStoreFromPGXPool(primary, append(storeOptions, options...)...)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	return es, closeAll, nil
}

// NewSQLiteEventStore opens the SQLite database, creates the events schema if needed
// and returns an event store on EventsTableName. The returned close function closes the database.
func NewSQLiteEventStore(
	ctx context.Context,
	cfg Config,
	options ...sqliteengine.Option,
) (*sqliteengine.EventStore, func(), error) {
	db, err := cfg.SQLite.OpenSQLite(ctx)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() { _ = db.Close() }

	es, err := sqliteEventStore(ctx, db, cfg.EventsTableName, options)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	return es, closeDB, nil
}

func sqliteEventStore(
	ctx context.Context,
	db *sql.DB,
	tableName string,
	options []sqliteengine.Option,
) (*sqliteengine.EventStore, error) {
	es, err := sqliteengine.NewEventStore(db, append([]sqliteengine.Option{sqliteengine.WithTableName(tableName)}, options...)...)
	if err != nil {
		return nil, err
	}

	if err = es.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	return es, nil
}
