package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/logger"
)

// Service owns the connection pool for the actors and movies tables.
type Service struct {
	db      *sql.DB
	driver  DatabaseDriver
	queries *Queries
}

// NewService opens the database named by cfg.DatabaseURL. The schema is not
// applied; call Migrate for that.
func NewService(cfg *config.Config) (*Service, error) {
	conn, driver, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("Database service initialized", "driver", string(driver))
	return &Service{db: conn, driver: driver, queries: New(conn, driver)}, nil
}

func (s *Service) Queries() *Queries      { return s.queries }
func (s *Service) Driver() DatabaseDriver { return s.driver }

// Ping reports whether the database answers. Used by the readiness probe.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithTx runs fn inside a transaction and commits when it returns nil.
// An error or a panic from fn rolls back. With SQLite the pool holds a
// single connection, so fn must only use the Queries it is handed.
func (s *Service) WithTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
	}()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
