package app

import (
	"github.com/streamvibe/backend/internal/auth"
	"github.com/streamvibe/backend/internal/config"
	"github.com/streamvibe/backend/internal/db"
	"github.com/streamvibe/backend/internal/handlers"
	"github.com/streamvibe/backend/internal/repositories"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	return handlers.Dependencies{
		Videos: repositories.NewPostgresVideoRepository(pool),
		Views:  repositories.NewPostgresViewRepository(pool),
		Admins: repositories.NewPostgresAdminRepository(pool),
		Tokens: tokens,
	}, nil
}
