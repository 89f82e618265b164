package models

import "time"

// Video is a catalog entry pointing at externally hosted media.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	IsActive     bool      `json:"isActive"`
	DatePosted   time.Time `json:"datePosted"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Admin is the single administrative account role. Password holds the
// bcrypt hash, never plaintext.
type Admin struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// VideoView is one append-only playback audit record. It is distinct from
// the aggregate Views counter on the video itself.
type VideoView struct {
	ID        int64     `json:"id"`
	VideoID   int64     `json:"videoId"`
	ViewerIP  string    `json:"viewerIp,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// AdminStats aggregates dashboard counters. TotalViews sums the views
// column across every video, active or not, while listings hide inactive
// rows (documented source behavior). StorageUsed is a fixed placeholder
// because media lives on external URLs.
type AdminStats struct {
	TotalVideos int64  `json:"totalVideos"`
	TotalViews  int64  `json:"totalViews"`
	StorageUsed string `json:"storageUsed"`
	Categories  int64  `json:"categories"`
}

// Pagination describes the window returned by a paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// TotalPages computes ceil(total/limit) for a listing of total rows.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// VideoInput carries caller-supplied fields for creating a video. Counters
// and timestamps are always assigned server-side.
type VideoInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	VideoURL     string   `json:"videoUrl"`
	Tags         []string `json:"tags"`
	Category     string   `json:"category"`
	IsActive     *bool    `json:"isActive"`
}

// VideoUpdate carries a partial update. Nil fields are left untouched.
type VideoUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	VideoURL     *string    `json:"videoUrl"`
	Tags         *[]string  `json:"tags"`
	Category     *string    `json:"category"`
	IsActive     *bool      `json:"isActive"`
	DatePosted   *time.Time `json:"datePosted"`
}
