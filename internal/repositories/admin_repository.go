package repositories

import (
	"context"

	"github.com/streamvibe/backend/internal/models"
)

// AdminRepository exposes data access for administrator accounts.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
	Create(ctx context.Context, username, passwordHash string) (models.Admin, error)
}
