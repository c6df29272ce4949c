package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect hides the differences between the supported SQL backends.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(cfg DialectConfig) string
	// RewriteQuery converts ? placeholders when the driver needs another syntax.
	RewriteQuery(query string) string
	ConfigureConnection(db *sql.DB) error
	// SchemaStatements returns the idempotent DDL for the catalog tables.
	SchemaStatements() []string
	// SupportsNotify reports whether the backend can push change notifications.
	SupportsNotify() bool
}

type DialectConfig struct {
	// sqlite
	Path string
	// postgres, mysql
	URL string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
