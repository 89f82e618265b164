package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/streamvibe/backend/internal/db"
	"github.com/streamvibe/backend/internal/models"
)

// storageUsedPlaceholder is reported by Stats. Media files live on external
// URLs, so the service itself holds no assets.
const storageUsedPlaceholder = "0 GB"

const videoColumns = `id, title, COALESCE(description, ''), thumbnail_url, video_url, tags, category, views, likes, is_active, date_posted, created_at, updated_at`

// PostgresVideoRepository provides PostgreSQL-backed persistence for catalog videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

// orderClause maps a listing filter to its ORDER BY expression. Unknown
// filters sort as FilterLatest.
func orderClause(filter string) string {
	switch filter {
	case FilterPopular, FilterMostViewed:
		return "views DESC, id DESC"
	case FilterFavorite:
		return "likes DESC, id DESC"
	case FilterLatest:
		return "date_posted DESC, id DESC"
	default:
		return "date_posted DESC, id DESC"
	}
}

// offsetFor computes the row offset of a page.
func offsetFor(page, limit int) int {
	return (page - 1) * limit
}

// List returns active videos filtered, sorted and paginated.
func (r *PostgresVideoRepository) List(ctx context.Context, params ListVideosParams) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	query := fmt.Sprintf(`
        SELECT %s
        FROM videos
        WHERE is_active = TRUE
    `, videoColumns)

	args := []any{}
	if params.Category != "" {
		args = append(args, params.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s", orderClause(params.Filter))

	args = append(args, params.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offsetFor(params.Page, params.Limit))
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// Count returns the number of active videos, optionally scoped to a category.
func (r *PostgresVideoRepository) Count(ctx context.Context, category string) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	query := `SELECT COUNT(*) FROM videos WHERE is_active = TRUE`
	args := []any{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int64
	if err := conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}

	return total, nil
}

// FindByID fetches a single video by its identifier.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id int64) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s
        FROM videos
        WHERE id = $1
    `, videoColumns), id)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("select video by id: %w", err)
	}

	return video, nil
}

// Popular returns the most viewed active videos.
func (r *PostgresVideoRepository) Popular(ctx context.Context, limit int) ([]models.Video, error) {
	return r.topActive(ctx, "views DESC, id DESC", limit)
}

// Latest returns the most recently posted active videos.
func (r *PostgresVideoRepository) Latest(ctx context.Context, limit int) ([]models.Video, error) {
	return r.topActive(ctx, "date_posted DESC, id DESC", limit)
}

func (r *PostgresVideoRepository) topActive(ctx context.Context, order string, limit int) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT %s
        FROM videos
        WHERE is_active = TRUE
        ORDER BY %s
        LIMIT $1
    `, videoColumns, order), limit)
	if err != nil {
		return nil, fmt.Errorf("query top videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// ListAll returns every video regardless of visibility, newest first.
func (r *PostgresVideoRepository) ListAll(ctx context.Context, page, limit int) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, fmt.Sprintf(`
        SELECT %s
        FROM videos
        ORDER BY date_posted DESC, id DESC
        LIMIT $1 OFFSET $2
    `, videoColumns), limit, offsetFor(page, limit))
	if err != nil {
		return nil, fmt.Errorf("query all videos: %w", err)
	}
	defer rows.Close()

	return collectVideos(rows)
}

// Create inserts a new video. Counters start at zero and timestamps are
// assigned by the database, whatever the caller supplied.
func (r *PostgresVideoRepository) Create(ctx context.Context, input models.VideoInput) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	row := conn.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO videos (title, description, thumbnail_url, video_url, tags, category, is_active)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
        RETURNING %s
    `, videoColumns), input.Title, input.Description, input.ThumbnailURL, input.VideoURL, tags, input.Category, isActive)

	video, err := scanVideo(row)
	if err != nil {
		return models.Video{}, fmt.Errorf("insert video: %w", err)
	}

	return video, nil
}

// Update merges the provided fields into an existing video and refreshes
// updated_at. Returns ErrNotFound when the id does not exist.
func (r *PostgresVideoRepository) Update(ctx context.Context, id int64, update models.VideoUpdate) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.ThumbnailURL != nil {
		addSet("thumbnail_url", *update.ThumbnailURL)
	}
	if update.VideoURL != nil {
		addSet("video_url", *update.VideoURL)
	}
	if update.Tags != nil {
		addSet("tags", *update.Tags)
	}
	if update.Category != nil {
		addSet("category", *update.Category)
	}
	if update.IsActive != nil {
		addSet("is_active", *update.IsActive)
	}
	if update.DatePosted != nil {
		addSet("date_posted", *update.DatePosted)
	}

	row := conn.QueryRow(ctx, fmt.Sprintf(`
        UPDATE videos
        SET %s
        WHERE id = $1
        RETURNING %s
    `, strings.Join(sets, ", "), videoColumns), args...)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("update video: %w", err)
	}

	return video, nil
}

// Delete removes a video row. It reports whether a row was removed.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete video: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// IncrementViews adds one to the aggregate view counter. The increment is a
// single UPDATE expression so concurrent calls never lose updates.
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET views = views + 1, updated_at = NOW()
        WHERE id = $1
    `, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Stats aggregates dashboard counters across every video, active or not.
func (r *PostgresVideoRepository) Stats(ctx context.Context) (models.AdminStats, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	stats := models.AdminStats{StorageUsed: storageUsedPlaceholder}
	err = conn.QueryRow(ctx, `
        SELECT COUNT(*), COALESCE(SUM(views), 0), COUNT(DISTINCT category)
        FROM videos
    `).Scan(&stats.TotalVideos, &stats.TotalViews, &stats.Categories)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("aggregate video stats: %w", err)
	}

	return stats, nil
}

// PostgresAdminRepository provides PostgreSQL-backed persistence for administrators.
type PostgresAdminRepository struct {
	pool db.Pool
}

// NewPostgresAdminRepository constructs an admin repository backed by PostgreSQL.
func NewPostgresAdminRepository(pool db.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{pool: pool}
}

// FindByUsername fetches an administrator account by username.
func (r *PostgresAdminRepository) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Admin{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, username, password_hash, created_at
        FROM admins
        WHERE username = $1
    `, username)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Username, &admin.Password, &admin.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, ErrNotFound
		}
		return models.Admin{}, fmt.Errorf("select admin by username: %w", err)
	}

	return admin, nil
}

// Create persists a new administrator account.
func (r *PostgresAdminRepository) Create(ctx context.Context, username, passwordHash string) (models.Admin, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Admin{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        INSERT INTO admins (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, username, password_hash, created_at
    `, username, passwordHash)

	var admin models.Admin
	if err := row.Scan(&admin.ID, &admin.Username, &admin.Password, &admin.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Admin{}, ErrConflict
		}
		return models.Admin{}, fmt.Errorf("insert admin: %w", err)
	}

	return admin, nil
}

// PostgresViewRepository provides PostgreSQL-backed persistence for playback events.
type PostgresViewRepository struct {
	pool db.Pool
}

// NewPostgresViewRepository constructs a view repository backed by PostgreSQL.
func NewPostgresViewRepository(pool db.Pool) *PostgresViewRepository {
	return &PostgresViewRepository{pool: pool}
}

// Record appends a playback audit event. Returns ErrNotFound when the
// referenced video does not exist.
func (r *PostgresViewRepository) Record(ctx context.Context, videoID int64, viewerIP, userAgent string) (models.VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.VideoView{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        INSERT INTO video_views (video_id, viewer_ip, user_agent)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
        RETURNING id, video_id, COALESCE(viewer_ip, ''), COALESCE(user_agent, ''), viewed_at
    `, videoID, viewerIP, userAgent)

	var view models.VideoView
	if err := row.Scan(&view.ID, &view.VideoID, &view.ViewerIP, &view.UserAgent, &view.ViewedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.VideoView{}, ErrNotFound
		}
		return models.VideoView{}, fmt.Errorf("insert video view: %w", err)
	}

	return view, nil
}

func scanVideo(row pgx.Row) (models.Video, error) {
	var (
		video       models.Video
		description string
	)
	if err := row.Scan(
		&video.ID, &video.Title, &description, &video.ThumbnailURL, &video.VideoURL,
		&video.Tags, &video.Category, &video.Views, &video.Likes, &video.IsActive,
		&video.DatePosted, &video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return models.Video{}, err
	}
	video.Description = description
	if video.Tags == nil {
		video.Tags = []string{}
	}
	return video, nil
}

func collectVideos(rows pgx.Rows) ([]models.Video, error) {
	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)
var _ AdminRepository = (*PostgresAdminRepository)(nil)
var _ ViewRepository = (*PostgresViewRepository)(nil)
