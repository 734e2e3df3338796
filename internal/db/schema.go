package db

import (
	"context"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS actors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	gender TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	release_date TEXT NOT NULL
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS actors (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER NOT NULL,
	gender TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS movies (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	release_date TEXT NOT NULL
);
`

// Schema returns the DDL for the given driver.
func Schema(driver DatabaseDriver) string {
	if driver == PostgreSQL {
		return postgresSchema
	}
	return sqliteSchema
}

// Migrate creates the actors and movies tables if they do not exist.
func (s *Service) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema(s.driver)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
