// Package storage opens the key-value database for the configured driver and
// brings its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/client/migrations"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/kv"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

type dialect struct {
	sqlDriver string
	goose     string
	dir       string
}

var dialects = map[string]dialect{
	config.DriverSQLite:   {sqlDriver: "sqlite", goose: "sqlite3", dir: "sqlite"},
	config.DriverPostgres: {sqlDriver: "pgx", goose: "postgres", dir: "postgres"},
}

// RunMigrations applies the embedded migrations for driver.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("unsupported storage driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens the database for driver/dsn and runs migrations. For
// SQLite the parent directory of dsn is created when needed and the pool is
// limited to one connection.
func InitDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	if driver == config.DriverSQLite {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0o770); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewStore wraps db in the key-value store matching driver.
func NewStore(db *sql.DB, driver string) (*kv.DBStore, error) {
	switch driver {
	case config.DriverSQLite:
		return kv.NewSQLiteStore(db), nil
	case config.DriverPostgres:
		return kv.NewPostgresStore(db), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}
