package movies

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
	getErr    error
	updates   int
}

func (s *stubRepo) ListMovies(context.Context) ([]db.Movie, error) {
	return []db.Movie{}, nil
}

func (s *stubRepo) GetMovie(_ context.Context, id int64) (*db.Movie, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &db.Movie{ID: id, Title: "Rear Window", ReleaseDate: "1954-08-01"}, nil
}

func (s *stubRepo) CreateMovie(_ context.Context, p repository.CreateMovieParams) (*db.Movie, error) {
	return &db.Movie{ID: 1, Title: p.Title, ReleaseDate: p.ReleaseDate}, nil
}

func (s *stubRepo) UpdateMovie(ctx context.Context, id int64, p repository.UpdateMovieParams) (*db.Movie, error) {
	s.updates++
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		movie.Title = *p.Title
	}
	return movie, nil
}

func (s *stubRepo) DeleteMovie(context.Context, int64) error {
	return s.deleteErr
}

func newTestMux(repo repository.MovieRepository) http.Handler {
	r := chi.NewRouter()
	guard := middleware.NewPermissionGroup(middleware.AllowAll("auth0|test"))
	RegisterRoutes(r, "/movies", &config.Config{AppEnv: config.EnvTest}, guard, repo)
	return r
}

func TestDeleteHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"missing", repository.ErrMovieNotFound, http.StatusNotFound},
		{"store failure", fmt.Errorf("%w: %w", repository.ErrDeleteFailed, errors.New("database is locked")), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestMux(&stubRepo{deleteErr: tt.err}).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/movies/3", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusInternalServerError && strings.Contains(w.Body.String(), "connection reset") {
				t.Errorf("Internal error leaked to client: %s", w.Body.String())
			}
			if tt.wantStatus == http.StatusOK && !strings.Contains(w.Body.String(), `"delete":3`) {
				t.Errorf("Expected deleted id in body, got %s", w.Body.String())
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
		{"missing with truncated body", repository.ErrMovieNotFound, `{"title":`, http.StatusNotFound, 0},
		{"missing with blank title", repository.ErrMovieNotFound, `{"title":"  "}`, http.StatusNotFound, 0},
		{"present with blank title", nil, `{"title":"  "}`, http.StatusBadRequest, 0},
		{"present with valid body", nil, `{"title":"Vertigo"}`, http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{getErr: tt.getErr}
			w := httptest.NewRecorder()
			newTestMux(repo).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/movies/42", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if repo.updates != tt.wantUpdates {
				t.Errorf("UpdateMovie called %d times, want %d", repo.updates, tt.wantUpdates)
			}
		})
	}
}

func TestRoutesOnlyMatchNumericIDs(t *testing.T) {
	mux := newTestMux(&stubRepo{})
	for _, path := range []string{"/movies/abc", "/movies/0"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("DELETE %s: expected 404, got %d", path, w.Code)
		}
	}
}
