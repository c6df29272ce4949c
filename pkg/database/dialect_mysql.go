package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string { return "mysql" }

func (d *MySQLDialect) DriverName() string { return "mysql" }

func (d *MySQLDialect) DSN(cfg DialectConfig) string { return cfg.URL }

func (d *MySQLDialect) RewriteQuery(query string) string { return query }

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *MySQLDialect) SupportsNotify() bool { return false }

func (d *MySQLDialect) SchemaStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS courses (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS topics (
			id VARCHAR(64) PRIMARY KEY,
			course_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_topics_course_id (course_id),
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS flashcards (
			id VARCHAR(64) PRIMARY KEY,
			topic_id VARCHAR(64) NOT NULL,
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			type VARCHAR(32) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_flashcards_topic_id (topic_id),
			FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`,
	}
}
