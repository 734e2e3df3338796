// Package actors serves the /actors collection.
package actors

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
	PermissionGet    = "get:actors"
	PermissionPost   = "post:actors"
	PermissionPatch  = "patch:actors"
	PermissionDelete = "delete:actors"
)

// idPattern only matches decimal ids, so other path segments fall through to 404.
const idPattern = "/{id:[0-9]+}"

type ActorsRouter struct {
	*svrlib.Router
	repo repository.ActorRepository
}

// RegisterRoutes registers the actor routes under baseRoute. Every route is
// guarded by exactly one permission.
func RegisterRoutes(mux chi.Router, baseRoute string, cfg *config.Config, guard *middleware.PermissionGroup, repo repository.ActorRepository) *ActorsRouter {
	router := &ActorsRouter{
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
	Actors  []db.Actor `json:"actors"`
}

type actorResponse struct {
	Success bool      `json:"success"`
	Actor   *db.Actor `json:"actor"`
}

type deleteResponse struct {
	Success bool  `json:"success"`
	Delete  int64 `json:"delete"`
}

type createRequest struct {
	Name   *string `json:"name" validate:"required,notblank"`
	Age    *int32  `json:"age" validate:"required,gt=0"`
	Gender *string `json:"gender" validate:"required,notblank"`
}

type updateRequest struct {
	Name   *string `json:"name" validate:"omitnil,notblank"`
	Age    *int32  `json:"age" validate:"omitnil,gt=0"`
	Gender *string `json:"gender" validate:"omitnil,notblank"`
}

// ListHandler returns every actor ordered by id.
func (rt *ActorsRouter) ListHandler(w http.ResponseWriter, r *http.Request) {
	actors, err := rt.repo.ListActors(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, err, "op", "list actors")
		return
	}
	httputil.WriteSuccess(w, listResponse{Success: true, Actors: actors})
}

// CreateHandler inserts an actor. name, age and gender are all mandatory.
func (rt *ActorsRouter) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, httputil.DecodeStatus(err), "error", err)
		return
	}
	if err := validation.Struct(req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "error", err)
		return
	}

	actor, err := rt.repo.CreateActor(r.Context(), repository.CreateActorParams{
		Name:   *req.Name,
		Age:    *req.Age,
		Gender: *req.Gender,
	})
	if err != nil {
		httputil.WriteInternalError(w, err, "op", "create actor")
		return
	}

	logger.Info("Actor created", "id", actor.ID, "sub", middleware.Subject(r))
	httputil.WriteCreated(w, actorResponse{Success: true, Actor: actor})
}

// UpdateHandler applies a partial update. Absent fields keep their value.
// A missing actor is reported before the body is looked at.
func (rt *ActorsRouter) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "id", chi.URLParam(r, "id"))
		return
	}

	if _, err := rt.repo.GetActor(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "id", id)
			return
		}
		httputil.WriteInternalError(w, err, "op", "get actor", "id", id)
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

	actor, err := rt.repo.UpdateActor(r.Context(), id, repository.UpdateActorParams{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "id", id)
			return
		}
		httputil.WriteInternalError(w, err, "op", "update actor", "id", id)
		return
	}

	logger.Info("Actor updated", "id", actor.ID, "sub", middleware.Subject(r))
	httputil.WriteSuccess(w, actorResponse{Success: true, Actor: actor})
}

// DeleteHandler removes an actor and echoes its id.
func (rt *ActorsRouter) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "id", chi.URLParam(r, "id"))
		return
	}

	if err := rt.repo.DeleteActor(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrActorNotFound):
			httputil.WriteError(w, http.StatusNotFound, "id", id)
		case errors.Is(err, repository.ErrDeleteFailed):
			httputil.WriteError(w, http.StatusBadRequest, "id", id, "error", err)
		default:
			httputil.WriteInternalError(w, err, "op", "delete actor", "id", id)
		}
		return
	}

	logger.Info("Actor deleted", "id", id, "sub", middleware.Subject(r))
	httputil.WriteSuccess(w, deleteResponse{Success: true, Delete: id})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
