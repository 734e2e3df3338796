package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrschumacher/casting-agency/internal/db"
)

type movieRepository struct {
	dbService *db.Service
}

func (r *movieRepository) ListMovies(ctx context.Context) ([]db.Movie, error) {
	movies, err := r.dbService.Queries().ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// GetMovie returns the movie with the given id or ErrMovieNotFound.
func (r *movieRepository) GetMovie(ctx context.Context, id int64) (*db.Movie, error) {
	movie, err := r.dbService.Queries().GetMovie(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

func (r *movieRepository) CreateMovie(ctx context.Context, params CreateMovieParams) (*db.Movie, error) {
	var movie db.Movie
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		var err error
		movie, err = q.CreateMovie(ctx, db.CreateMovieParams{
			Title:       params.Title,
			ReleaseDate: params.ReleaseDate,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	return &movie, nil
}

// UpdateMovie applies the non-nil fields of params to the movie with the given id.
func (r *movieRepository) UpdateMovie(ctx context.Context, id int64, params UpdateMovieParams) (*db.Movie, error) {
	var movie db.Movie
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		current, err := q.GetMovie(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return fmt.Errorf("failed to get movie: %w", err)
		}

		update := db.UpdateMovieParams{
			ID:          current.ID,
			Title:       current.Title,
			ReleaseDate: current.ReleaseDate,
		}
		if params.Title != nil {
			update.Title = *params.Title
		}
		if params.ReleaseDate != nil {
			update.ReleaseDate = *params.ReleaseDate
		}

		movie, err = q.UpdateMovie(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) DeleteMovie(ctx context.Context, id int64) error {
	err := r.dbService.WithTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetMovie(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return fmt.Errorf("failed to get movie: %w", err)
		}

		n, err := q.DeleteMovie(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
		}
		if n == 0 {
			return ErrMovieNotFound
		}
		return nil
	})
	return deleteFailure(err, ErrMovieNotFound)
}
