package migrator

import (
	"database/sql"

	"github.com/casebridge-io/casebridge/db/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator applies the embedded SQL migrations to a sqlite database.
type Migrator struct {
	db *sql.DB
}

func New(db *sql.DB) *Migrator {
	return &Migrator{
		db: db,
	}
}

func (m *Migrator) init() (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{})
	if err != nil {
		return nil, err
	}

	d, err := iofs.New(migrations.SQLs, ".")
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", d, "sqlite3", driver)
}

func (m *Migrator) Up() error {
	migration, err := m.init()
	if err != nil {
		return err
	}
	err = migration.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

func (m *Migrator) Reset() error {
	migration, err := m.init()
	if err != nil {
		return err
	}
	return migration.Drop()
}

// Status returns the current schema version.
func (m *Migrator) Status() (version uint, dirty bool, err error) {
	migration, err := m.init()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = migration.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	return
}
