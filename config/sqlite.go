package config

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite" // sqlite driver
)

const sqliteDriverName = "sqlite"

// OpenSQLite opens a database/sql handle through modernc.org/sqlite and pings it.
func (c SQLiteConfig) OpenSQLite(ctx context.Context) (*sql.DB, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open(sqliteDriverName, c.DSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}
