package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/streamvibe/backend/internal/auth"
	"github.com/streamvibe/backend/internal/logging"
	"github.com/streamvibe/backend/internal/models"
	"github.com/streamvibe/backend/internal/repositories"
)

const defaultAdminListLimit = 20

// AdminHandler implements the authenticated admin panel endpoints.
type AdminHandler struct {
	Admins AdminStore
	Videos VideoStore
	Tokens TokenService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Admin adminSummary `json:"admin"`
}

type adminSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Login handles POST /api/admin/login. A failed lookup and a wrong password
// produce the same response so usernames cannot be probed.
func (h AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	admin, err := h.Admins.FindByUsername(ctx, req.Username)
	if err != nil {
		logger.Warn("login lookup failed", "username", req.Username, "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	if !auth.VerifyPassword(req.Password, admin.Password) {
		logger.Warn("login password mismatch", "adminId", admin.ID)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		logger.Error("issue token failed", "adminId", admin.ID, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, loginResponse{
		Token: token,
		Admin: adminSummary{ID: admin.ID, Username: admin.Username},
	})
}

// authorize extracts and verifies the bearer token. It writes the 401
// response itself and reports whether the request may proceed. Every admin
// endpoint calls this on entry.
func (h AdminHandler) authorize(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	ctx := r.Context()

	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "no token provided"})
		return auth.Claims{}, false
	}

	claims, err := h.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		logging.FromContext(ctx).Warn("token rejected", "error", err)
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return auth.Claims{}, false
	}

	return claims, true
}

// Stats handles GET /api/admin/stats.
func (h AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	stats, err := h.Videos.Stats(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("aggregate stats failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch stats"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, stats)
}

// ListVideos handles GET /api/admin/videos, returning inactive videos too.
func (h AdminHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultAdminListLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	videos, err := h.Videos.ListAll(ctx, page, limit)
	if err != nil {
		logger.Error("admin list videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch videos"})
		return
	}

	total, err := h.Videos.Count(ctx, "")
	if err != nil {
		logger.Error("admin count videos failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch videos"})
		return
	}

	if videos == nil {
		videos = []models.Video{}
	}

	respondJSON(ctx, w, http.StatusOK, videoListResponse{
		Videos: videos,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: models.TotalPages(total, limit),
		},
	})
}

// CreateVideo handles POST /api/admin/videos.
func (h AdminHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	var input models.VideoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if fields := validateVideoInput(input); len(fields) > 0 {
		respondJSON(ctx, w, http.StatusBadRequest, validationErrorResponse{Error: "invalid video data", Fields: fields})
		return
	}

	video, err := h.Videos.Create(ctx, input)
	if err != nil {
		logging.FromContext(ctx).Error("create video failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create video"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, video)
}

// UpdateVideo handles PUT /api/admin/videos/{id} with partial semantics.
func (h AdminHandler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid video id"})
		return
	}

	var update models.VideoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if fields := validateVideoUpdate(update); len(fields) > 0 {
		respondJSON(ctx, w, http.StatusBadRequest, validationErrorResponse{Error: "invalid video data", Fields: fields})
		return
	}

	video, err := h.Videos.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
			return
		}
		logging.FromContext(ctx).Error("update video failed", "videoId", id, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to update video"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, video)
}

// DeleteVideo handles DELETE /api/admin/videos/{id}.
func (h AdminHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := h.authorize(w, r); !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid video id"})
		return
	}

	deleted, err := h.Videos.Delete(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("delete video failed", "videoId", id, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to delete video"})
		return
	}

	if !deleted {
		respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "video not found"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"message": "video deleted"})
}

type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func validateVideoInput(input models.VideoInput) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "is required"
	} else if len(input.Title) > 255 {
		fields["title"] = "must be at most 255 characters"
	}

	if input.ThumbnailURL == "" {
		fields["thumbnailUrl"] = "is required"
	} else if !isValidURL(input.ThumbnailURL) {
		fields["thumbnailUrl"] = "must be a valid URL"
	}

	if input.VideoURL == "" {
		fields["videoUrl"] = "is required"
	} else if !isValidURL(input.VideoURL) {
		fields["videoUrl"] = "must be a valid URL"
	}

	if strings.TrimSpace(input.Category) == "" {
		fields["category"] = "is required"
	}

	return fields
}

func validateVideoUpdate(update models.VideoUpdate) map[string]string {
	fields := make(map[string]string)

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			fields["title"] = "must not be empty"
		} else if len(*update.Title) > 255 {
			fields["title"] = "must be at most 255 characters"
		}
	}

	if update.ThumbnailURL != nil && !isValidURL(*update.ThumbnailURL) {
		fields["thumbnailUrl"] = "must be a valid URL"
	}

	if update.VideoURL != nil && !isValidURL(*update.VideoURL) {
		fields["videoUrl"] = "must be a valid URL"
	}

	if update.Category != nil && strings.TrimSpace(*update.Category) == "" {
		fields["category"] = "must not be empty"
	}

	return fields
}
