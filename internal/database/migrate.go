package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsTable = "fitbazaar_schema_migrations"

//go:embed migrations
var migrations embed.FS

// Migrate brings the schema up to date. The four tables are independent and
// carry no foreign keys.
func Migrate(db *DB) error {
	src, err := iofs.New(migrations, "migrations/"+db.Dialect.String())
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	var driver migratedb.Driver
	switch db.Dialect {
	case MySQL:
		driver, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{MigrationsTable: migrationsTable})
	default:
		driver, err = migratepg.WithInstance(db.DB, &migratepg.Config{MigrationsTable: migrationsTable})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	// m.Close would also close db, so the instance is left for the GC.
	m, err := migrate.NewWithInstance("iofs", src, db.Dialect.String(), driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}
