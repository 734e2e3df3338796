// Package repository exposes transactional operations over actors and movies.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrschumacher/casting-agency/internal/db"
)

// ActorRepository provides high-level operations for actors
type ActorRepository interface {
	ListActors(ctx context.Context) ([]db.Actor, error)
	GetActor(ctx context.Context, id int64) (*db.Actor, error)
	CreateActor(ctx context.Context, params CreateActorParams) (*db.Actor, error)
	UpdateActor(ctx context.Context, id int64, params UpdateActorParams) (*db.Actor, error)
	DeleteActor(ctx context.Context, id int64) error
}

// MovieRepository provides high-level operations for movies
type MovieRepository interface {
	ListMovies(ctx context.Context) ([]db.Movie, error)
	GetMovie(ctx context.Context, id int64) (*db.Movie, error)
	CreateMovie(ctx context.Context, params CreateMovieParams) (*db.Movie, error)
	UpdateMovie(ctx context.Context, id int64, params UpdateMovieParams) (*db.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// Repository aggregates all repository interfaces
type Repository interface {
	Actors() ActorRepository
	Movies() MovieRepository
}

type CreateActorParams struct {
	Name   string
	Age    int32
	Gender string
}

// UpdateActorParams carries a partial update; nil fields are left unchanged.
type UpdateActorParams struct {
	Name   *string
	Age    *int32
	Gender *string
}

type CreateMovieParams struct {
	Title       string
	ReleaseDate string
}

// UpdateMovieParams carries a partial update; nil fields are left unchanged.
type UpdateMovieParams struct {
	Title       *string
	ReleaseDate *string
}

type repositoryImpl struct {
	actors ActorRepository
	movies MovieRepository
}

// NewRepository creates a new repository instance
func NewRepository(dbService *db.Service) Repository {
	return &repositoryImpl{
		actors: &actorRepository{dbService: dbService},
		movies: &movieRepository{dbService: dbService},
	}
}

func (r *repositoryImpl) Actors() ActorRepository {
	return r.actors
}

func (r *repositoryImpl) Movies() MovieRepository {
	return r.movies
}

// deleteFailure reports every store error other than notFound as
// ErrDeleteFailed, including a transaction that fails to begin or commit.
func deleteFailure(err, notFound error) error {
	if err == nil || errors.Is(err, notFound) || errors.Is(err, ErrDeleteFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
}
