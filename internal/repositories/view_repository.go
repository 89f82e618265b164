package repositories

import (
	"context"

	"github.com/streamvibe/backend/internal/models"
)

// ViewRepository appends playback audit events. Records are never updated
// or deleted once written.
type ViewRepository interface {
	Record(ctx context.Context, videoID int64, viewerIP, userAgent string) (models.VideoView, error)
}
