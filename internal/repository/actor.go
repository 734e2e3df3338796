package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrschumacher/casting-agency/internal/db"
)

type actorRepository struct {
	dbService *db.Service
}

func (r *actorRepository) ListActors(ctx context.Context) ([]db.Actor, error) {
	actors, err := r.dbService.Queries().ListActors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actors: %w", err)
	}
	return actors, nil
}

// GetActor returns the actor with the given id or ErrActorNotFound.
func (r *actorRepository) GetActor(ctx context.Context, id int64) (*db.Actor, error) {
	actor, err := r.dbService.Queries().GetActor(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get actor: %w", err)
	}
	return &actor, nil
}

func (r *actorRepository) CreateActor(ctx context.Context, params CreateActorParams) (*db.Actor, error) {
	var actor db.Actor
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		var err error
		actor, err = q.CreateActor(ctx, db.CreateActorParams{
			Name:   params.Name,
			Age:    params.Age,
			Gender: params.Gender,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create actor: %w", err)
	}
	return &actor, nil
}

// UpdateActor applies the non-nil fields of params to the actor with the given id.
func (r *actorRepository) UpdateActor(ctx context.Context, id int64, params UpdateActorParams) (*db.Actor, error) {
	var actor db.Actor
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		current, err := q.GetActor(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrActorNotFound
			}
			return fmt.Errorf("failed to get actor: %w", err)
		}

		update := db.UpdateActorParams{
			ID:     current.ID,
			Name:   current.Name,
			Age:    current.Age,
			Gender: current.Gender,
		}
		if params.Name != nil {
			update.Name = *params.Name
		}
		if params.Age != nil {
			update.Age = *params.Age
		}
		if params.Gender != nil {
			update.Gender = *params.Gender
		}

		actor, err = q.UpdateActor(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update actor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// DeleteActor removes the actor. Store failures are reported as ErrDeleteFailed
// after the transaction has been rolled back.
func (r *actorRepository) DeleteActor(ctx context.Context, id int64) error {
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetActor(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrActorNotFound
			}
			return fmt.Errorf("failed to get actor: %w", err)
		}

		n, err := q.DeleteActor(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
		}
		if n == 0 {
			return ErrActorNotFound
		}
		return nil
	})
	return deleteFailure(err, ErrActorNotFound)
}
