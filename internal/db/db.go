// Package db opens the sqlite database that holds grid snapshots and keeps
// its schema current through embedded migrations.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the embedded migration files rooted at the
// migrations directory.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		// Unreachable: the directory is embedded at build time.
		panic(err)
	}
	return sub
}

type DB struct {
	*sql.DB
}

// pragmas applied to every connection opened by OpenDB.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
}

// OpenDB opens the database at path and applies the connection PRAGMAs
// without touching the schema.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return &DB{sqlDB}, nil
}

// NewDB opens the database at path and migrates it to the latest schema.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
