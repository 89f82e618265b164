package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	videos := VideoHandler{Videos: deps.Videos, Views: deps.Views}
	admin := AdminHandler{Admins: deps.Admins, Videos: deps.Videos, Tokens: deps.Tokens}

	mux.HandleFunc("GET /healthz", health.Handle)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/videos", videos.List)
	mux.HandleFunc("GET /api/videos/popular", videos.Popular)
	mux.HandleFunc("GET /api/videos/latest", videos.Latest)
	mux.HandleFunc("GET /api/videos/{id}", videos.Get)
	mux.HandleFunc("POST /api/videos/{id}/view", videos.TrackView)

	mux.HandleFunc("POST /api/admin/login", admin.Login)
	mux.HandleFunc("GET /api/admin/stats", admin.Stats)
	mux.HandleFunc("GET /api/admin/videos", admin.ListVideos)
	mux.HandleFunc("POST /api/admin/videos", admin.CreateVideo)
	mux.HandleFunc("PUT /api/admin/videos/{id}", admin.UpdateVideo)
	mux.HandleFunc("DELETE /api/admin/videos/{id}", admin.DeleteVideo)
}
