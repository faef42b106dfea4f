// Package migrations holds the embedded SQL schema of both services and
// applies it with goose.
//
// The auth schema differs per dialect (identity column syntax). The game
// schema is plain SQL shared by PostgreSQL and SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed auth/postgres/*.sql auth/sqlite3/*.sql game/*.sql
var embedMigrations embed.FS

// ErrUnsupportedDriver is returned for a database/sql driver name other than
// "pgx" or "sqlite3".
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// MigrateAuth applies the credential store schema.
func MigrateAuth(ctx context.Context, db *sql.DB, driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	return migrate(ctx, db, dialect, "auth/"+driver)
}

// MigrateGame applies the resources and buildings schema.
func MigrateGame(ctx context.Context, db *sql.DB, driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	return migrate(ctx, db, dialect, "game")
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "pgx":
		return goose.DialectPostgres, nil
	case "sqlite3":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}
