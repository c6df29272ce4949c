package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"flashcard-service/config"
)

// DB wraps the connection with dialect-aware query helpers.
type DB struct {
	*sql.DB
	Dialect Dialect
	config  DialectConfig
}

func DialectFor(dbType string) (Dialect, error) {
	switch strings.ToLower(dbType) {
	case "postgres", "postgresql", "":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

func NewClient(cfg *config.DBConfig) (*DB, error) {
	dialect, err := DialectFor(cfg.Type)
	if err != nil {
		return nil, err
	}
	return Open(dialect, DialectConfig{URL: cfg.URL, Path: cfg.Path})
}

func Open(dialect Dialect, dialectConfig DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect, config: dialectConfig}, nil
}

func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

// URL is the connection string, used by listeners that need their own
// connection.
func (db *DB) URL() string {
	return db.config.URL
}

func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range db.Dialect.SchemaStatements() {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize %s schema: %w", db.Dialect.Name(), err)
		}
	}
	return nil
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// Notify sends payload on a Postgres notification channel. It is a no-op for
// dialects without notifications.
func (db *DB) Notify(ctx context.Context, channel, payload string) error {
	if !db.Dialect.SupportsNotify() {
		return nil
	}
	_, err := db.ExecContext(ctx, "SELECT pg_notify(?, ?)", channel, payload)
	return err
}
