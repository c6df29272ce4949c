package database

import "testing"

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dbType     string
		wantName   string
		wantDriver string
		wantNotify bool
		wantErr    bool
	}{
		{dbType: "postgres", wantName: "postgres", wantDriver: "postgres", wantNotify: true},
		{dbType: "PostgreSQL", wantName: "postgres", wantDriver: "postgres", wantNotify: true},
		{dbType: "", wantName: "postgres", wantDriver: "postgres", wantNotify: true},
		{dbType: "mysql", wantName: "mysql", wantDriver: "mysql"},
		{dbType: "sqlite3", wantName: "sqlite", wantDriver: "sqlite3"},
		{dbType: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			dialect, err := DialectFor(tt.dbType)
			if tt.wantErr {
				if err == nil {
					t.Errorf("DialectFor(%q) error = nil, want error", tt.dbType)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q) error = %v", tt.dbType, err)
			}
			if dialect.Name() != tt.wantName {
				t.Errorf("Name() = %v, want %v", dialect.Name(), tt.wantName)
			}
			if dialect.DriverName() != tt.wantDriver {
				t.Errorf("DriverName() = %v, want %v", dialect.DriverName(), tt.wantDriver)
			}
			if dialect.SupportsNotify() != tt.wantNotify {
				t.Errorf("SupportsNotify() = %v, want %v", dialect.SupportsNotify(), tt.wantNotify)
			}
			if len(dialect.SchemaStatements()) == 0 {
				t.Error("SchemaStatements() is empty")
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM flashcards WHERE topic_id = ?",
			expected: "SELECT * FROM flashcards WHERE topic_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM flashcards WHERE topic_id = ?",
			expected: "SELECT * FROM flashcards WHERE topic_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO topics (id, course_id, name) VALUES (?, ?, ?)",
			expected: "INSERT INTO topics (id, course_id, name) VALUES ($1, $2, $3)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE courses SET name = ? WHERE id = ?",
			expected: "UPDATE courses SET name = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := DialectConfig{Path: "cards.db", URL: "postgres://u:p@h/db"}
	if got := NewSQLiteDialect().DSN(cfg); got != "cards.db" {
		t.Errorf("SQLite DSN() = %v, want %v", got, "cards.db")
	}
	if got := NewPostgresDialect().DSN(cfg); got != cfg.URL {
		t.Errorf("Postgres DSN() = %v, want %v", got, cfg.URL)
	}
}
