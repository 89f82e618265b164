package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvibe/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  24 * time.Hour,
	}

	deps, err := buildDependencies(fakePool{}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Videos == nil {
		t.Fatal("expected video repository to be configured")
	}
	if deps.Views == nil {
		t.Fatal("expected view repository to be configured")
	}
	if deps.Admins == nil {
		t.Fatal("expected admin repository to be configured")
	}
	if deps.Tokens == nil {
		t.Fatal("expected token service to be configured")
	}
}

func TestBuildDependenciesRejectsEmptySecret(t *testing.T) {
	if _, err := buildDependencies(fakePool{}, config.Config{TokenTTL: time.Hour}); err == nil {
		t.Fatal("expected error for missing signing secret")
	}
}
