package actors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/db"
	"github.com/jrschumacher/casting-agency/internal/middleware"
	"github.com/jrschumacher/casting-agency/internal/repository"
)

type stubRepo struct {
	deleteErr error
	listErr   error
	getErr    error
	created   []repository.CreateActorParams
	updates   int
}

func (s *stubRepo) ListActors(context.Context) ([]db.Actor, error) {
	return []db.Actor{}, s.listErr
}

func (s *stubRepo) CreateActor(_ context.Context, p repository.CreateActorParams) (*db.Actor, error) {
	s.created = append(s.created, p)
	return &db.Actor{ID: int64(len(s.created)), Name: p.Name, Age: p.Age, Gender: p.Gender}, nil
}

func (s *stubRepo) GetActor(_ context.Context, id int64) (*db.Actor, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &db.Actor{ID: id, Name: "Meryl", Age: 74, Gender: "female"}, nil
}

func (s *stubRepo) UpdateActor(_ context.Context, id int64, p repository.UpdateActorParams) (*db.Actor, error) {
	s.updates++
	actor, err := s.GetActor(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p.Age != nil {
		actor.Age = *p.Age
	}
	return actor, nil
}

func (s *stubRepo) DeleteActor(context.Context, int64) error {
	return s.deleteErr
}

func newTestMux(repo repository.ActorRepository) http.Handler {
	r := chi.NewRouter()
	guard := middleware.NewPermissionGroup(middleware.AllowAll("auth0|test"))
	RegisterRoutes(r, "/actors", &config.Config{AppEnv: config.EnvTest}, guard, repo)
	return r
}

func TestDeleteHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", repository.ErrActorNotFound, http.StatusNotFound},
		{"store failure", fmt.Errorf("%w: %w", repository.ErrDeleteFailed, errors.New("disk I/O error")), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubRepo{deleteErr: tt.err})
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/actors/7", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(w.Body.String(), "connection reset") {
				t.Errorf("Internal error leaked to client: %s", w.Body.String())
			}
		})
	}
}

func TestUpdateHandler_LookupBeforeBody(t *testing.T) {
	tests := []struct {
		name        string
		getErr      error
		body        string
		wantStatus  int
		wantUpdates int
	}{
		{"missing with truncated body", repository.ErrActorNotFound, `{"name":`, http.StatusNotFound, 0},
		{"missing with invalid age", repository.ErrActorNotFound, `{"age":0}`, http.StatusNotFound, 0},
		{"missing with valid body", repository.ErrActorNotFound, `{"age":30}`, http.StatusNotFound, 0},
		{"lookup failure", errors.New("connection reset"), `{"age":30}`, http.StatusInternalServerError, 0},
		{"present with truncated body", nil, `{"name":`, http.StatusBadRequest, 0},
		{"present with invalid age", nil, `{"age":0}`, http.StatusBadRequest, 0},
		{"present with valid body", nil, `{"age":30}`, http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{getErr: tt.getErr}
			w := httptest.NewRecorder()
			newTestMux(repo).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/actors/99999", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if repo.updates != tt.wantUpdates {
				t.Errorf("UpdateActor called %d times, want %d", repo.updates, tt.wantUpdates)
			}
		})
	}
}

func TestCreateHandler_PassesFieldsThrough(t *testing.T) {
	repo := &stubRepo{}
	mux := newTestMux(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/actors", strings.NewReader(`{"name":"Meryl","age":74,"gender":"female"}`))
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(repo.created) != 1 || repo.created[0].Name != "Meryl" || repo.created[0].Age != 74 {
		t.Errorf("Unexpected create params: %+v", repo.created)
	}
}

func TestListHandler_StoreFailure(t *testing.T) {
	mux := newTestMux(&stubRepo{listErr: errors.New("boom")})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/actors", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		id     string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.id)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		got, ok := pathID(r)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("pathID(%q) = %d, %v; want %d, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}
