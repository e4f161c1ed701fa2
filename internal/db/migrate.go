package db

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/banshee-data/turbgrid/internal/monitoring"
)

// MigrateUp runs all pending migrations up to the latest version.
// Returns nil if no migrations were needed (already at latest version).
func (db *DB) MigrateUp(migrations fs.FS) error {
	m, err := db.newMigrate(migrations)
	if err != nil {
		return err
	}
	// m is not closed: closing it would close the underlying DB connection.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown(migrations fs.FS) error {
	m, err := db.newMigrate(migrations)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// MigrateVersion returns the current migration version and dirty state.
// Returns 0, false, nil if no migrations have been applied yet.
func (db *DB) MigrateVersion(migrations fs.FS) (version uint, dirty bool, err error) {
	m, err := db.newMigrate(migrations)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = m.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrate creates a migrate instance reading migrations from an fs.FS.
func (db *DB) newMigrate(migrations fs.FS) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations source: %w", err)
	}

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

// migrateLogger implements migrate.Logger on top of monitoring.Logf.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
