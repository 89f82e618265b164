package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/streamvibe/backend/internal/models"
	"github.com/streamvibe/backend/internal/repositories"
)

type videoStoreStub struct {
	videos    []models.Video
	total     int64
	stats     models.AdminStats
	created   *models.VideoInput
	updatedID int64
	update    *models.VideoUpdate
	deletedID int64
	deleted   bool

	listParams    repositories.ListVideosParams
	listAllPage   int
	listAllLimit  int
	incrementedID int64

	findErr   error
	updateErr error
	listErr   error
}

func (s *videoStoreStub) List(_ context.Context, params repositories.ListVideosParams) ([]models.Video, error) {
	s.listParams = params
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.videos, nil
}

func (s *videoStoreStub) Count(context.Context, string) (int64, error) {
	return s.total, nil
}

func (s *videoStoreStub) FindByID(_ context.Context, id int64) (models.Video, error) {
	if s.findErr != nil {
		return models.Video{}, s.findErr
	}
	for _, v := range s.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Video{}, repositories.ErrNotFound
}

func (s *videoStoreStub) Popular(_ context.Context, limit int) ([]models.Video, error) {
	if limit < len(s.videos) {
		return s.videos[:limit], nil
	}
	return s.videos, nil
}

func (s *videoStoreStub) Latest(_ context.Context, limit int) ([]models.Video, error) {
	return s.Popular(context.Background(), limit)
}

func (s *videoStoreStub) ListAll(_ context.Context, page, limit int) ([]models.Video, error) {
	s.listAllPage = page
	s.listAllLimit = limit
	return s.videos, nil
}

func (s *videoStoreStub) Create(_ context.Context, input models.VideoInput) (models.Video, error) {
	s.created = &input
	return models.Video{
		ID:           101,
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		VideoURL:     input.VideoURL,
		Tags:         input.Tags,
		Category:     input.Category,
		IsActive:     true,
		DatePosted:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (s *videoStoreStub) Update(_ context.Context, id int64, update models.VideoUpdate) (models.Video, error) {
	s.updatedID = id
	s.update = &update
	if s.updateErr != nil {
		return models.Video{}, s.updateErr
	}
	return models.Video{ID: id}, nil
}

func (s *videoStoreStub) Delete(_ context.Context, id int64) (bool, error) {
	s.deletedID = id
	return s.deleted, nil
}

func (s *videoStoreStub) IncrementViews(_ context.Context, id int64) error {
	s.incrementedID = id
	return nil
}

func (s *videoStoreStub) Stats(context.Context) (models.AdminStats, error) {
	return s.stats, nil
}

type viewStoreStub struct {
	videoID   int64
	viewerIP  string
	userAgent string
	err       error
}

func (s *viewStoreStub) Record(_ context.Context, videoID int64, viewerIP, userAgent string) (models.VideoView, error) {
	s.videoID = videoID
	s.viewerIP = viewerIP
	s.userAgent = userAgent
	if s.err != nil {
		return models.VideoView{}, s.err
	}
	return models.VideoView{ID: 1, VideoID: videoID, ViewerIP: viewerIP, UserAgent: userAgent}, nil
}

func sampleVideos(n int) []models.Video {
	videos := make([]models.Video, 0, n)
	for i := 0; i < n; i++ {
		videos = append(videos, models.Video{
			ID:       int64(i + 1),
			Title:    "Video",
			Views:    int64(1000 - i),
			IsActive: true,
		})
	}
	return videos
}

func TestVideoHandlerListPagination(t *testing.T) {
	store := &videoStoreStub{videos: sampleVideos(5), total: 12}
	handler := VideoHandler{Videos: store, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos?filter=popular&page=1&limit=5", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	if store.listParams.Filter != "popular" || store.listParams.Page != 1 || store.listParams.Limit != 5 {
		t.Fatalf("unexpected list params: %+v", store.listParams)
	}

	var resp videoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Videos) != 5 {
		t.Fatalf("expected 5 videos, got %d", len(resp.Videos))
	}
	if resp.Pagination.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", resp.Pagination.TotalPages)
	}
	if resp.Pagination.Total != 12 {
		t.Fatalf("expected total 12, got %d", resp.Pagination.Total)
	}

	for i := 1; i < len(resp.Videos); i++ {
		if resp.Videos[i].Views > resp.Videos[i-1].Views {
			t.Fatalf("expected non-increasing views, got %+v", resp.Videos)
		}
	}
}

func TestVideoHandlerListDefaults(t *testing.T) {
	store := &videoStoreStub{}
	handler := VideoHandler{Videos: store, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if store.listParams.Page != 1 || store.listParams.Limit != defaultListLimit {
		t.Fatalf("expected default pagination, got %+v", store.listParams)
	}

	var resp videoListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Videos == nil {
		t.Fatal("expected empty array, not null")
	}
}

func TestVideoHandlerListClampsLimit(t *testing.T) {
	store := &videoStoreStub{}
	handler := VideoHandler{Videos: store, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos?limit=100000", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if store.listParams.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, store.listParams.Limit)
	}
}

func TestVideoHandlerGet(t *testing.T) {
	store := &videoStoreStub{videos: []models.Video{{ID: 7, Title: "Found"}}}
	handler := VideoHandler{Videos: store, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/7", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var video models.Video
	if err := json.NewDecoder(rec.Body).Decode(&video); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if video.ID != 7 || video.Title != "Found" {
		t.Fatalf("unexpected video: %+v", video)
	}
}

func TestVideoHandlerGetNotFound(t *testing.T) {
	handler := VideoHandler{Videos: &videoStoreStub{}, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestVideoHandlerGetInvalidID(t *testing.T) {
	handler := VideoHandler{Videos: &videoStoreStub{}, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestVideoHandlerTrackView(t *testing.T) {
	store := &videoStoreStub{videos: sampleVideos(1)}
	views := &viewStoreStub{}
	handler := VideoHandler{Videos: store, Views: views}

	req := httptest.NewRequest(http.MethodPost, "/api/videos/1/view", nil)
	req.SetPathValue("id", "1")
	req.RemoteAddr = "203.0.113.9:54321"
	req.Header.Set("User-Agent", "test-agent/1.0")
	rec := httptest.NewRecorder()

	handler.TrackView(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	if views.videoID != 1 {
		t.Fatalf("expected view recorded for video 1, got %d", views.videoID)
	}
	if views.viewerIP != "203.0.113.9" {
		t.Fatalf("expected viewer ip from remote addr, got %q", views.viewerIP)
	}
	if views.userAgent != "test-agent/1.0" {
		t.Fatalf("expected user agent recorded, got %q", views.userAgent)
	}
	if store.incrementedID != 1 {
		t.Fatalf("expected views counter incremented for video 1, got %d", store.incrementedID)
	}
}

func TestVideoHandlerTrackViewForwardedFor(t *testing.T) {
	views := &viewStoreStub{}
	handler := VideoHandler{Videos: &videoStoreStub{}, Views: views}

	req := httptest.NewRequest(http.MethodPost, "/api/videos/1/view", nil)
	req.SetPathValue("id", "1")
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	rec := httptest.NewRecorder()

	handler.TrackView(rec, req)

	if views.viewerIP != "198.51.100.7" {
		t.Fatalf("expected first forwarded address, got %q", views.viewerIP)
	}
}

func TestVideoHandlerTrackViewUnknownVideo(t *testing.T) {
	views := &viewStoreStub{err: repositories.ErrNotFound}
	store := &videoStoreStub{}
	handler := VideoHandler{Videos: store, Views: views}

	req := httptest.NewRequest(http.MethodPost, "/api/videos/42/view", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()

	handler.TrackView(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
	if store.incrementedID != 0 {
		t.Fatal("expected no counter increment after failed audit insert")
	}
}

func TestVideoHandlerPopular(t *testing.T) {
	store := &videoStoreStub{videos: sampleVideos(12)}
	handler := VideoHandler{Videos: store, Views: &viewStoreStub{}}

	req := httptest.NewRequest(http.MethodGet, "/api/videos/popular", nil)
	rec := httptest.NewRecorder()

	handler.Popular(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var videos []models.Video
	if err := json.NewDecoder(rec.Body).Decode(&videos); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(videos) != defaultTopLimit {
		t.Fatalf("expected %d popular videos, got %d", defaultTopLimit, len(videos))
	}
}
