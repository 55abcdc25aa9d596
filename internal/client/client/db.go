package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/schoolauth/internal/client/migrations"
	"github.com/dmitrijs2005/schoolauth/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite file at dsn and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSQLiteTokenStore prepares the database at path, creating its
// directory if needed, and returns a token store over it. The caller
// closes the returned *sql.DB.
func OpenSQLiteTokenStore(ctx context.Context, path string) (*SQLiteTokenStore, *sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open token store %s: %w", path, err)
	}
	return NewSQLiteTokenStore(db), db, nil
}
