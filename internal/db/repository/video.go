package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

// VideoFilters narrows and orders a video listing.
type VideoFilters struct {
	// Query is matched case-insensitively against title and description.
	Query string
	// OwnerID, when set, restricts the listing to one channel.
	OwnerID *uuid.UUID
	// SortBy is one of createdAt, views, duration, title.
	SortBy string
	// SortDir is asc or desc.
	SortDir string
	Page    Page
}

// VideoRepository defines operations for managing videos and the
// joined video views.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves the bare video row.
	GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error)

	// GetDetail retrieves a video with its owner joined as a channel
	// projection.
	GetDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error)

	// List returns one page of published videos with owner projections
	// and pagination totals, all in a single query.
	List(ctx context.Context, filters VideoFilters) (*models.VideoPage, error)

	// ListByOwner returns all of a channel's videos, newest first,
	// including unpublished ones.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error)

	UpdateMetadata(ctx context.Context, videoID uuid.UUID, title, description, thumbnailURL string) (*models.Video, error)
	Delete(ctx context.Context, videoID uuid.UUID) error

	// TogglePublish flips the publish flag and returns the new state.
	TogglePublish(ctx context.Context, videoID uuid.UUID) (*models.Video, error)

	// IncrementViews atomically bumps the view counter by one.
	IncrementViews(ctx context.Context, videoID uuid.UUID) error
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

const videoColumns = `v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description, v.duration, v.views, v.is_published, v.created_at, v.updated_at`

const ownerColumns = `u.id, u.username, u.full_name, u.avatar_url`

// videoSortColumns whitelists the sortable columns; anything else
// falls back to creation time.
var videoSortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, video_url, thumbnail_url, title, description, duration, views, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.VideoURL,
		video.ThumbnailURL,
		video.Title,
		video.Description,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos v WHERE v.id = $1`

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&video.ID,
		&video.OwnerID,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) GetDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error) {
	query := `
		SELECT ` + videoColumns + `, ` + ownerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	detail := &models.VideoDetail{}
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&detail.ID,
		&detail.OwnerID,
		&detail.VideoURL,
		&detail.ThumbnailURL,
		&detail.Title,
		&detail.Description,
		&detail.Duration,
		&detail.Views,
		&detail.IsPublished,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Channel.ID,
		&detail.Channel.Username,
		&detail.Channel.FullName,
		&detail.Channel.Avatar,
	)
	if err != nil {
		return nil, db.WrapError(err, "get video detail")
	}

	return detail, nil
}

func (r *videoRepository) List(ctx context.Context, filters VideoFilters) (*models.VideoPage, error) {
	sortCol, ok := videoSortColumns[filters.SortBy]
	if !ok {
		sortCol = "v.created_at"
	}
	dir := "DESC"
	if filters.SortDir == "asc" {
		dir = "ASC"
	}

	// COUNT(*) OVER() carries the pre-limit total so listing and count
	// are a single round trip.
	query := fmt.Sprintf(`
		SELECT `+videoColumns+`, `+ownerColumns+`, COUNT(*) OVER() AS total
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.is_published
		  AND ($1 = '' OR v.title ILIKE '%%' || $1 || '%%' OR v.description ILIKE '%%' || $1 || '%%')
		  AND ($2::uuid IS NULL OR v.owner_id = $2)
		ORDER BY %s %s
		LIMIT $3 OFFSET $4
	`, sortCol, dir)

	rows, err := r.pool.Query(ctx, query, filters.Query, filters.OwnerID, filters.Page.Size, filters.Page.Offset())
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	page := &models.VideoPage{
		Videos: []models.VideoView{},
		Page:   filters.Page.Number,
		Limit:  filters.Page.Size,
	}

	for rows.Next() {
		var view models.VideoView
		var total int
		err := rows.Scan(
			&view.ID,
			&view.OwnerID,
			&view.VideoURL,
			&view.ThumbnailURL,
			&view.Title,
			&view.Description,
			&view.Duration,
			&view.Views,
			&view.IsPublished,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Owner.ID,
			&view.Owner.Username,
			&view.Owner.FullName,
			&view.Owner.Avatar,
			&total,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video view: %w", err)
		}
		page.TotalVideos = total
		page.Videos = append(page.Videos, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	// The window total only travels with returned rows; a page past the
	// end still owes the caller the real count.
	if len(page.Videos) == 0 && filters.Page.Offset() > 0 {
		countQuery := `
			SELECT COUNT(*)
			FROM videos v
			WHERE v.is_published
			  AND ($1 = '' OR v.title ILIKE '%' || $1 || '%' OR v.description ILIKE '%' || $1 || '%')
			  AND ($2::uuid IS NULL OR v.owner_id = $2)
		`
		if err := r.pool.QueryRow(ctx, countQuery, filters.Query, filters.OwnerID).Scan(&page.TotalVideos); err != nil {
			return nil, db.WrapError(err, "count videos")
		}
	}

	page.TotalPages = filters.Page.TotalPages(page.TotalVideos)

	return page, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	query := `
		SELECT ` + videoColumns + `
		FROM videos v
		WHERE v.owner_id = $1
		ORDER BY v.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "list videos by owner")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) UpdateMetadata(ctx context.Context, videoID uuid.UUID, title, description, thumbnailURL string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET title = $2,
		    description = $3,
		    thumbnail_url = CASE WHEN $4 = '' THEN thumbnail_url ELSE $4 END,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + bareVideoColumns

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, videoID, title, description, thumbnailURL).Scan(
		&video.ID,
		&video.OwnerID,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "update video")
	}

	return video, nil
}

func (r *videoRepository) Delete(ctx context.Context, videoID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, videoID)
	if err != nil {
		return db.WrapError(err, "delete video")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete video")
	}
	return nil
}

func (r *videoRepository) TogglePublish(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	query := `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = now()
		WHERE id = $1
		RETURNING ` + bareVideoColumns

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&video.ID,
		&video.OwnerID,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "toggle publish status")
	}

	return video, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, videoID)
	if err != nil {
		return db.WrapError(err, "increment views")
	}
	return nil
}

const bareVideoColumns = `id, owner_id, video_url, thumbnail_url, title, description, duration, views, is_published, created_at, updated_at`

// scanVideos collects bare video rows.
func scanVideos(rows pgx.Rows) ([]models.Video, error) {
	videos := []models.Video{}

	for rows.Next() {
		var video models.Video
		err := rows.Scan(
			&video.ID,
			&video.OwnerID,
			&video.VideoURL,
			&video.ThumbnailURL,
			&video.Title,
			&video.Description,
			&video.Duration,
			&video.Views,
			&video.IsPublished,
			&video.CreatedAt,
			&video.UpdatedAt,
		)
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

// scanVideoViews collects video rows joined with their owner projection.
func scanVideoViews(rows pgx.Rows) ([]models.VideoView, error) {
	views := []models.VideoView{}

	for rows.Next() {
		var view models.VideoView
		err := rows.Scan(
			&view.ID,
			&view.OwnerID,
			&view.VideoURL,
			&view.ThumbnailURL,
			&view.Title,
			&view.Description,
			&view.Duration,
			&view.Views,
			&view.IsPublished,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Owner.ID,
			&view.Owner.Username,
			&view.Owner.FullName,
			&view.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video view: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video views: %w", err)
	}

	return views, nil
}
