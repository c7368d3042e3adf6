package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"blog/internal/config"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrations embed.FS

// goose dialect and migration directory per configured driver.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	config.DriverSQLite: {dialect: "sqlite3", dir: "migrations/sqlite"},
	config.DriverMySQL:  {dialect: "mysql", dir: "migrations/mysql"},
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations for driver.
func Migrate(ctx context.Context, db *sql.DB, driver string, log goose.Logger) error {
	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
	}

	if log == nil {
		log = goose.NopLogger()
	}
	goose.SetLogger(log)
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("set goose dialect %q: %w", d.dialect, err)
	}
	if err := gooseUpContext(ctx, db, d.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
