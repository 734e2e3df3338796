package repository

import "errors"

// Common repository errors that can be tested for
var (
	ErrActorNotFound = errors.New("actor not found")
	ErrMovieNotFound = errors.New("movie not found")
	ErrDeleteFailed  = errors.New("delete failed")
)
