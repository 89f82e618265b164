package handlers

import (
	"context"

	"github.com/streamvibe/backend/internal/auth"
	"github.com/streamvibe/backend/internal/models"
	"github.com/streamvibe/backend/internal/repositories"
)

// VideoStore captures the persistence operations required by the video handlers.
type VideoStore interface {
	List(ctx context.Context, params repositories.ListVideosParams) ([]models.Video, error)
	Count(ctx context.Context, category string) (int64, error)
	FindByID(ctx context.Context, id int64) (models.Video, error)
	Popular(ctx context.Context, limit int) ([]models.Video, error)
	Latest(ctx context.Context, limit int) ([]models.Video, error)
	ListAll(ctx context.Context, page, limit int) ([]models.Video, error)
	Create(ctx context.Context, input models.VideoInput) (models.Video, error)
	Update(ctx context.Context, id int64, update models.VideoUpdate) (models.Video, error)
	Delete(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.AdminStats, error)
}

// AdminStore captures the persistence operations required for admin login.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
}

// ViewStore appends playback audit events.
type ViewStore interface {
	Record(ctx context.Context, videoID int64, viewerIP, userAgent string) (models.VideoView, error)
}

// TokenService issues and verifies admin bearer tokens.
type TokenService interface {
	Issue(adminID int64, username string) (string, error)
	Verify(token string) (auth.Claims, error)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Videos VideoStore
	Views  ViewStore
	Admins AdminStore
	Tokens TokenService
}
