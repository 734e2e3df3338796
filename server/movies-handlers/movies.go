// Package movies serves the /movies collection.
package movies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/db"
	"github.com/jrschumacher/casting-agency/internal/httputil"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/jrschumacher/casting-agency/internal/middleware"
	"github.com/jrschumacher/casting-agency/internal/repository"
	"github.com/jrschumacher/casting-agency/internal/svrlib"
	"github.com/jrschumacher/casting-agency/internal/validation"
)

const (
	PermissionGet    = "get:movies"
	PermissionPost   = "post:movies"
	PermissionPatch  = "patch:movies"
	PermissionDelete = "delete:movies"
)

// idPattern only matches decimal ids, so other path segments fall through to 404.
const idPattern = "/{id:[0-9]+}"

type MoviesRouter struct {
	*svrlib.Router
	repo repository.MovieRepository
}

// RegisterRoutes registers the movie routes under baseRoute. Every route is
// guarded by exactly one permission.
func RegisterRoutes(mux chi.Router, baseRoute string, cfg *config.Config, guard *middleware.PermissionGroup, repo repository.MovieRepository) *MoviesRouter {
	router := &MoviesRouter{
		Router: svrlib.NewRouter(mux, baseRoute, cfg, guard),
		repo:   repo,
	}

	router.Guarded(http.MethodGet, "", PermissionGet, router.ListHandler)
	router.Guarded(http.MethodPost, "", PermissionPost, router.CreateHandler)
	router.Guarded(http.MethodPatch, idPattern, PermissionPatch, router.UpdateHandler)
	router.Guarded(http.MethodDelete, idPattern, PermissionDelete, router.DeleteHandler)

	return router
}

type listResponse struct {
	Success bool       `json:"success"`
	Movies  []db.Movie `json:"movies"`
}

type movieResponse struct {
	Success bool      `json:"success"`
	Movie   *db.Movie `json:"movie"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	Delete  int64 `json:"delete"`
}

type createRequest struct {
	Title       *string `json:"title" validate:"required,notblank"`
	ReleaseDate *string `json:"release_date" validate:"required,notblank"`
}

type updateRequest struct {
	Title       *string `json:"title" validate:"omitnil,notblank"`
	ReleaseDate *string `json:"release_date" validate:"omitnil,notblank"`
}

// ListHandler returns every movie ordered by id.
func (rt *MoviesRouter) ListHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := rt.repo.ListMovies(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, err, "op", "list movies")
		return
	}
	httputil.WriteSuccess(w, listResponse{Success: true, Movies: movies})
}

// CreateHandler inserts a movie. title and release_date are both mandatory.
func (rt *MoviesRouter) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, httputil.DecodeStatus(err), "error", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "error", err)
		return
	}

	movie, err := rt.repo.CreateMovie(r.Context(), repository.CreateMovieParams{
		Title:       *req.Title,
		ReleaseDate: *req.ReleaseDate,
	})
	if err != nil {
		httputil.WriteInternalError(w, err, "op", "create movie")
		return
	}

	logger.Info("Movie created", "id", movie.ID, "sub", middleware.Subject(r))
	httputil.WriteCreated(w, movieResponse{Success: true, Movie: movie})
}

// UpdateHandler applies a partial update. Absent fields keep their value.
// A missing movie is reported before the body is looked at.
func (rt *MoviesRouter) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "id", chi.URLParam(r, "id"))
		return
	}

	if _, err := rt.repo.GetMovie(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "id", id)
			return
		}
		httputil.WriteInternalError(w, err, "op", "get movie", "id", id)
		return
	}

	var req updateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, httputil.DecodeStatus(err), "error", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "error", err)
		return
	}

	movie, err := rt.repo.UpdateMovie(r.Context(), id, repository.UpdateMovieParams{
		Title:       req.Title,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "id", id)
			return
		}
		httputil.WriteInternalError(w, err, "op", "update movie", "id", id)
		return
	}

	logger.Info("Movie updated", "id", movie.ID, "sub", middleware.Subject(r))
	httputil.WriteSuccess(w, movieResponse{Success: true, Movie: movie})
}

// DeleteHandler removes a movie and echoes its id.
func (rt *MoviesRouter) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "id", chi.URLParam(r, "id"))
		return
	}

	if err := rt.repo.DeleteMovie(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			httputil.WriteError(w, http.StatusNotFound, "id", id)
		case errors.Is(err, repository.ErrDeleteFailed):
			httputil.WriteError(w, http.StatusBadRequest, "id", id, "error", err)
		default:
			httputil.WriteInternalError(w, err, "op", "delete movie", "id", id)
		}
		return
	}

	logger.Info("Movie deleted", "id", id, "sub", middleware.Subject(r))
	httputil.WriteSuccess(w, deleteResponse{Success: true, Delete: id})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
