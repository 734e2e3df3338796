// Package db owns the SQL connection, schema and queries for actors and movies.
package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/logger"

	// Database drivers
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DatabaseDriver names a registered database/sql driver.
type DatabaseDriver string

const (
	SQLite     DatabaseDriver = "sqlite3"
	PostgreSQL DatabaseDriver = "postgres"
)

// sqliteParams is appended to SQLite DSNs that carry no query string.
const sqliteParams = "_busy_timeout=10000&_journal_mode=WAL&_foreign_keys=on"

// Settings is a DSN plus the pool limits to open it with.
type Settings struct {
	Driver          DatabaseDriver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DetectDriver picks PostgreSQL for postgres URLs and keyword DSNs, SQLite otherwise.
func DetectDriver(dsn string) DatabaseDriver {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=") {
		return PostgreSQL
	}
	return SQLite
}

// NewSettings derives pool limits for dsn. SQLite is pinned to one
// connection so an in-memory database lives as long as the pool.
func NewSettings(dsn, appEnv string) Settings {
	s := Settings{Driver: DetectDriver(dsn), DSN: dsn}

	if s.Driver == SQLite {
		s.MaxOpenConns, s.MaxIdleConns = 1, 1
		if !strings.Contains(s.DSN, "?") {
			s.DSN += "?" + sqliteParams
		}
		return s
	}

	s.MaxOpenConns, s.MaxIdleConns = 25, 5
	s.ConnMaxLifetime = 5 * time.Minute
	if appEnv == config.EnvDev {
		s.MaxOpenConns, s.MaxIdleConns = 10, 2
	}
	return s
}

// Open connects to cfg.DatabaseURL and verifies the connection.
func Open(cfg *config.Config) (*sql.DB, DatabaseDriver, error) {
	s := NewSettings(cfg.DatabaseURL, cfg.AppEnv)

	logger.Info("Opening database connection",
		"driver", string(s.Driver),
		"maxOpenConns", s.MaxOpenConns,
		"maxIdleConns", s.MaxIdleConns)

	conn, err := sql.Open(string(s.Driver), s.DSN)
	if err != nil {
		return nil, s.Driver, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(s.MaxOpenConns)
	conn.SetMaxIdleConns(s.MaxIdleConns)
	conn.SetConnMaxLifetime(s.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, s.Driver, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range sessionStatements(s.Driver) {
		if _, err := conn.Exec(stmt); err != nil {
			logger.Warn("Session setting rejected", "driver", string(s.Driver), "statement", stmt, "error", err)
		}
	}
	return conn, s.Driver, nil
}

func sessionStatements(driver DatabaseDriver) []string {
	if driver == PostgreSQL {
		return []string{"SET timezone = 'UTC'"}
	}
	return []string{"PRAGMA synchronous = NORMAL", "PRAGMA temp_store = MEMORY"}
}

// Rebind rewrites "?" placeholders as $1, $2, ... for PostgreSQL.
// Queries must not contain literal question marks.
func Rebind(driver DatabaseDriver, query string) string {
	if driver != PostgreSQL || !strings.Contains(query, "?") {
		return query
	}
	parts := strings.Split(query, "?")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for i, p := range parts[1:] {
		sb.WriteString("$" + strconv.Itoa(i+1))
		sb.WriteString(p)
	}
	return sb.String()
}
