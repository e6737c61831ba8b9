package prefs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ngcs-mobile/courtclient/internal/client/prefs/migrations"
	"github.com/pressly/goose/v3"
)

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the preferences database at dsn and
// applies pending migrations. The caller owns the returned store and should
// Close it when done.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return NewSQLiteStore(db), nil
}
