package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

// WatchHistoryRepository records and lists per-user watch history. Each
// user keeps at most one entry per video; re-watching refreshes the
// entry's recency instead of duplicating it.
type WatchHistoryRepository interface {
	// RecordView upserts the (user, video) entry with the current
	// timestamp and trims the user's history down to maxEntries most
	// recent videos.
	RecordView(ctx context.Context, userID, videoID uuid.UUID, maxEntries int) error

	// List returns the user's history, most recently watched first.
	List(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error)
}

type watchHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewWatchHistoryRepository creates a new WatchHistoryRepository.
func NewWatchHistoryRepository(pool *pgxpool.Pool) WatchHistoryRepository {
	return &watchHistoryRepository{pool: pool}
}

func (r *watchHistoryRepository) RecordView(ctx context.Context, userID, videoID uuid.UUID, maxEntries int) error {
	upsert := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`

	_, err := r.pool.Exec(ctx, upsert, userID, videoID)
	if err != nil {
		return db.WrapError(err, "record watch history")
	}

	if maxEntries <= 0 {
		return nil
	}

	trim := `
		DELETE FROM watch_history
		WHERE user_id = $1
		AND video_id NOT IN (
			SELECT video_id FROM watch_history
			WHERE user_id = $1
			ORDER BY watched_at DESC
			LIMIT $2
		)
	`

	_, err = r.pool.Exec(ctx, trim, userID, maxEntries)
	if err != nil {
		return db.WrapError(err, "trim watch history")
	}

	return nil
}

func (r *watchHistoryRepository) List(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error) {
	query := `
		SELECT ` + videoColumns + `, ` + ownerColumns + `, wh.watched_at
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.watched_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, db.WrapError(err, "list watch history")
	}
	defer rows.Close()

	entries := []models.WatchHistoryEntry{}

	for rows.Next() {
		var entry models.WatchHistoryEntry
		err := rows.Scan(
			&entry.Video.ID,
			&entry.Video.OwnerID,
			&entry.Video.VideoURL,
			&entry.Video.ThumbnailURL,
			&entry.Video.Title,
			&entry.Video.Description,
			&entry.Video.Duration,
			&entry.Video.Views,
			&entry.Video.IsPublished,
			&entry.Video.CreatedAt,
			&entry.Video.UpdatedAt,
			&entry.Video.Owner.ID,
			&entry.Video.Owner.Username,
			&entry.Video.Owner.FullName,
			&entry.Video.Owner.Avatar,
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan watch history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}

	return entries, nil
}
