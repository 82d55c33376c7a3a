package config

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const postgresDriverName = "postgres"

// PGXPoolConfig parses the primary DSN and applies the pool settings.
func (c PostgresConfig) PGXPoolConfig() (*pgxpool.Config, error) {
	return c.pgxPoolConfig(c.DSN)
}

// ReplicaPGXPoolConfig parses the replica DSN and applies the pool settings.
func (c PostgresConfig) ReplicaPGXPoolConfig() (*pgxpool.Config, error) {
	if c.ReplicaDSN == "" {
		return nil, ErrNoReplicaConfigured
	}

	return c.pgxPoolConfig(c.ReplicaDSN)
}

func (c PostgresConfig) pgxPoolConfig(dsn string) (*pgxpool.Config, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidDSN, err)
	}

	poolConfig.MaxConns = c.MaxConns
	poolConfig.MinConns = c.MinConns
	poolConfig.MaxConnLifetime = c.MaxConnLifetime
	poolConfig.MaxConnIdleTime = c.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = c.HealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = c.ConnectTimeout

	return poolConfig, nil
}

// NewPGXPool opens a pool on the primary database and pings it.
func (c PostgresConfig) NewPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := c.PGXPoolConfig()
	if err != nil {
		return nil, err
	}

	return openPGXPool(ctx, poolConfig)
}

// NewReplicaPGXPool opens a pool on the replica database and pings it.
func (c PostgresConfig) NewReplicaPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := c.ReplicaPGXPoolConfig()
	if err != nil {
		return nil, err
	}

	return openPGXPool(ctx, poolConfig)
}

func openPGXPool(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return pool, nil
}

// OpenSQLDB opens a database/sql handle on the primary database through lib/pq and pings it.
func (c PostgresConfig) OpenSQLDB(ctx context.Context) (*sql.DB, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open(postgresDriverName, c.DSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	c.applyPoolSettings(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}

// OpenSQLX opens a sqlx handle on the primary database through lib/pq and pings it.
func (c PostgresConfig) OpenSQLX(ctx context.Context) (*sqlx.DB, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sqlx.Open(postgresDriverName, c.DSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	c.applyPoolSettings(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}

// applyPoolSettings uses MinConns as the number of idle connections kept by database/sql.
func (c PostgresConfig) applyPoolSettings(db *sql.DB) {
	db.SetMaxOpenConns(int(c.MaxConns))
	db.SetMaxIdleConns(int(c.MinConns))
	db.SetConnMaxLifetime(c.MaxConnLifetime)
	db.SetConnMaxIdleTime(c.MaxConnIdleTime)
}
