package repositories

import (
	"context"

	"github.com/streamvibe/backend/internal/models"
)

// Listing filters name the sort orders accepted by the public video listing.
// Unknown values fall back to FilterLatest.
const (
	FilterLatest     = "latest"
	FilterPopular    = "popular"
	FilterMostViewed = "most-viewed"
	FilterFavorite   = "favorite"
)

// ListVideosParams selects a page of the public catalog.
type ListVideosParams struct {
	Page     int
	Limit    int
	Filter   string
	Category string
}

// VideoRepository exposes data access for catalog videos.
type VideoRepository interface {
	// List returns active videos only, filtered, sorted and paginated.
	List(ctx context.Context, params ListVideosParams) ([]models.Video, error)
	// Count returns the number of active videos, optionally per category.
	Count(ctx context.Context, category string) (int64, error)
	FindByID(ctx context.Context, id int64) (models.Video, error)
	Popular(ctx context.Context, limit int) ([]models.Video, error)
	Latest(ctx context.Context, limit int) ([]models.Video, error)
	// ListAll returns every video regardless of visibility, newest first.
	ListAll(ctx context.Context, page, limit int) ([]models.Video, error)
	Create(ctx context.Context, input models.VideoInput) (models.Video, error)
	Update(ctx context.Context, id int64, update models.VideoUpdate) (models.Video, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// IncrementViews adds one to the aggregate view counter atomically.
	IncrementViews(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.AdminStats, error)
}
