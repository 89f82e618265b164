package handlers

import (
	"errors"
	"net/http"

	"github.com/streamvibe/backend/internal/logging"
	"github.com/streamvibe/backend/internal/models"
	"github.com/streamvibe/backend/internal/repositories"
)

const (
	defaultListLimit = 12
	defaultTopLimit  = 10
)

// VideoHandler provides the public catalog endpoints.
type VideoHandler struct {
	Videos VideoStore
	Views  ViewStore
}

type videoListResponse struct {
	Videos     []models.Video    `json:"videos"`
	Pagination models.Pagination `json:"pagination"`
}

// List handles GET /api/videos with pagination, sorting and category filtering.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	params := repositories.ListVideosParams{
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", defaultListLimit),
		Filter:   r.URL.Query().Get("filter"),
		Category: r.URL.Query().Get("category"),
	}
	if params.Limit > maxPageLimit {
		params.Limit = maxPageLimit
	}

	videos, err := h.Videos.List(ctx, params)
	if err != nil {
		logger.Error("list videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch videos"})
		return
	}

	total, err := h.Videos.Count(ctx, params.Category)
	if err != nil {
		logger.Error("count videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}

	respondJSON(ctx, w, http.StatusOK, videoListResponse{
		Videos: videos,
		Pagination: models.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: models.TotalPages(total, params.Limit),
		},
	})
}

// Popular handles GET /api/videos/popular.
func (h VideoHandler) Popular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Videos.Popular(ctx, defaultTopLimit)
	if err != nil {
		logging.FromContext(ctx).Error("popular videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch popular videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(ctx, w, http.StatusOK, videos)
}

// Latest handles GET /api/videos/latest.
func (h VideoHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Videos.Latest(ctx, defaultTopLimit)
	if err != nil {
		logging.FromContext(ctx).Error("latest videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch latest videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}
	respondJSON(ctx, w, http.StatusOK, videos)
}

// Get handles GET /api/videos/{id}.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid video id"})
		return
	}

	video, err := h.Videos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logging.FromContext(ctx).Error("fetch video failed", "videoId", id, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// TrackView handles POST /api/videos/{id}/view. It appends an audit event
// and bumps the aggregate counter; the two writes are independent.
func (h VideoHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	ctx, span := logging.StartSpan(r.Context(), "track-view")
	defer span.End()
	logger := logging.FromContext(ctx)

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid video id"})
		return
	}

	if _, err := h.Views.Record(ctx, id, clientIP(r), r.UserAgent()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logger.Error("record view failed", "videoId", id, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to track view"})
		return
	}

	if err := h.Videos.IncrementViews(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Error("increment views failed", "videoId", id, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to track view"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"message": "view tracked"})
}
