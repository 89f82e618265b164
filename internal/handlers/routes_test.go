package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/streamvibe/backend/internal/auth"
	"github.com/streamvibe/backend/internal/models"
)

func newTestServer(t *testing.T, videos *videoStoreStub, admins *adminStoreStub, tokens *auth.TokenService) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Videos: videos,
		Views:  &viewStoreStub{},
		Admins: admins,
		Tokens: tokens,
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginThenStatsFlow(t *testing.T) {
	admins := newAdminStoreStub()
	seedAdmin(t, admins, "ops", "hunter2hunter2")
	videos := &videoStoreStub{stats: models.AdminStats{TotalVideos: 4, TotalViews: 120, StorageUsed: "0 GB", Categories: 3}}
	server := newTestServer(t, videos, admins, newTestTokens(t))

	// Stats without a token is rejected.
	resp, err := http.Get(server.URL + "/api/admin/stats")
	if err != nil {
		t.Fatalf("stats request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d without token, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	body, _ := json.Marshal(loginRequest{Username: "ops", Password: "hunter2hunter2"})
	resp, err = http.Post(server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("authorized stats request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected stats status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var stats models.AdminStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalVideos != 4 {
		t.Fatalf("expected totalVideos 4, got %d", stats.TotalVideos)
	}
}

func TestPublicListingThroughRouter(t *testing.T) {
	videos := &videoStoreStub{videos: sampleVideos(5), total: 12}
	server := newTestServer(t, videos, newAdminStoreStub(), newTestTokens(t))

	resp, err := http.Get(server.URL + "/api/videos?filter=popular&page=1&limit=5")
	if err != nil {
		t.Fatalf("list request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var list videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode listing: %v", err)
	}

	if len(list.Videos) != 5 {
		t.Fatalf("expected 5 videos, got %d", len(list.Videos))
	}
	if list.Pagination.TotalPages != 3 {
		t.Fatalf("expected totalPages 3, got %d", list.Pagination.TotalPages)
	}
	for i := 1; i < len(list.Videos); i++ {
		if list.Videos[i].Views > list.Videos[i-1].Views {
			t.Fatalf("expected views sorted descending: %+v", list.Videos)
		}
	}
}

func TestRouterResolvesLiteralBeforeWildcard(t *testing.T) {
	videos := &videoStoreStub{videos: sampleVideos(3)}
	server := newTestServer(t, videos, newAdminStoreStub(), newTestTokens(t))

	// /api/videos/latest must hit the literal route, not {id}.
	resp, err := http.Get(server.URL + "/api/videos/latest")
	if err != nil {
		t.Fatalf("latest request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var list []models.Video
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode latest: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(list))
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, &videoStoreStub{}, newAdminStoreStub(), newTestTokens(t))

	resp, err := http.Post(server.URL+"/api/videos", "application/json", nil)
	if err != nil {
		t.Fatalf("post request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, resp.StatusCode)
	}
}

func TestExpiredTokenThroughRouter(t *testing.T) {
	tokens := newTestTokens(t)
	issuedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	tokens.NowFunc = func() time.Time { return issuedAt }
	token := bearerToken(t, tokens)
	tokens.NowFunc = func() time.Time { return issuedAt.Add(25 * time.Hour) }

	server := newTestServer(t, &videoStoreStub{}, newAdminStoreStub(), tokens)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/admin/videos", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}
