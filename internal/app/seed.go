package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/streamvibe/backend/internal/auth"
	"github.com/streamvibe/backend/internal/config"
	"github.com/streamvibe/backend/internal/db"
	"github.com/streamvibe/backend/internal/models"
	"github.com/streamvibe/backend/internal/repositories"
)

// runSeed creates the admin account and, when the catalog is empty, a set of
// sample videos for local development.
func runSeed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	username := os.Getenv("STREAMVIBE_SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("STREAMVIBE_SEED_ADMIN_PASSWORD")
	if password == "" {
		return errors.New("STREAMVIBE_SEED_ADMIN_PASSWORD must be set")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	admins := repositories.NewPostgresAdminRepository(pool)
	videos := repositories.NewPostgresVideoRepository(pool)

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := admins.Create(ctx, username, hashed); err != nil {
		if !errors.Is(err, repositories.ErrConflict) {
			return fmt.Errorf("seed admin: %w", err)
		}
		fmt.Printf("admin %q already exists\n", username)
	} else {
		fmt.Printf("created admin %q\n", username)
	}

	total, err := videos.Stats(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if total.TotalVideos > 0 {
		fmt.Println("catalog already seeded")
		return nil
	}

	for _, input := range sampleVideos {
		if _, err := videos.Create(ctx, input); err != nil {
			return fmt.Errorf("seed video %q: %w", input.Title, err)
		}
	}

	fmt.Printf("seeded %d sample videos\n", len(sampleVideos))
	return nil
}

var sampleVideos = []models.VideoInput{
	{
		Title:        "Introduction to Web Development",
		Description:  "Learn the basics of web development including HTML, CSS, and JavaScript fundamentals.",
		ThumbnailURL: "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=400&h=225&fit=crop",
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		Category:     "Education",
		Tags:         []string{"web development", "programming", "tutorial"},
	},
	{
		Title:        "React Tutorial for Beginners",
		Description:  "Complete React tutorial covering components, state management, and modern React patterns.",
		ThumbnailURL: "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400&h=225&fit=crop",
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
		Category:     "Programming",
		Tags:         []string{"react", "javascript", "frontend"},
	},
	{
		Title:        "Node.js Backend Development",
		Description:  "Build robust backend applications with Node.js, Express, and MongoDB.",
		ThumbnailURL: "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=400&h=225&fit=crop",
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
		Category:     "Programming",
		Tags:         []string{"nodejs", "backend", "express"},
	},
	{
		Title:        "Database Design Fundamentals",
		Description:  "Learn how to design efficient and scalable database schemas with practical examples.",
		ThumbnailURL: "https://images.unsplash.com/photo-1544383835-bda2bc66a55d?w=400&h=225&fit=crop",
		VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
		Category:     "Database",
		Tags:         []string{"database", "sql", "design"},
	},
}
