// Package testutil provides databases, identity provider fakes and fixtures for tests.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/db"
)

// TestDatabase returns a migrated in-memory SQLite service, closed on cleanup.
func TestDatabase(t *testing.T) *db.Service {
	t.Helper()

	svc, err := db.NewService(&config.Config{AppEnv: config.EnvTest, DatabaseURL: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	if err := svc.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}
	return svc
}

// TestServer serves handler over a loopback listener until the test ends.
func TestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// CreateTestActor inserts an actor, bypassing the repository.
func CreateTestActor(t *testing.T, svc *db.Service, name string, age int32, gender string) db.Actor {
	t.Helper()
	actor, err := svc.Queries().CreateActor(context.Background(), db.CreateActorParams{Name: name, Age: age, Gender: gender})
	if err != nil {
		t.Fatalf("Failed to create test actor %q: %v", name, err)
	}
	return actor
}

// CreateTestMovie inserts a movie, bypassing the repository.
func CreateTestMovie(t *testing.T, svc *db.Service, title, releaseDate string) db.Movie {
	t.Helper()
	movie, err := svc.Queries().CreateMovie(context.Background(), db.CreateMovieParams{Title: title, ReleaseDate: releaseDate})
	if err != nil {
		t.Fatalf("Failed to create test movie %q: %v", title, err)
	}
	return movie
}
