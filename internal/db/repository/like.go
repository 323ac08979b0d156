package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

// LikeRepository defines the like toggle and liked-video listing.
type LikeRepository interface {
	// Toggle flips the like state for (likedBy, target). It returns
	// true when the call created the like and false when it removed
	// one. The partial unique index, not an existence check, keeps the
	// pair unique under concurrent toggles.
	Toggle(ctx context.Context, target models.LikeTarget, targetID, likedBy uuid.UUID) (bool, error)

	// ListLikedVideos returns the videos a user has liked, most recent
	// like first, each with its owner projection.
	ListLikedVideos(ctx context.Context, likedBy uuid.UUID) ([]models.LikedVideo, error)
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

func targetColumn(target models.LikeTarget) (string, error) {
	switch target {
	case models.LikeTargetVideo:
		return "video_id", nil
	case models.LikeTargetComment:
		return "comment_id", nil
	case models.LikeTargetTweet:
		return "tweet_id", nil
	default:
		return "", fmt.Errorf("unknown like target %q", target)
	}
}

func (r *likeRepository) Toggle(ctx context.Context, target models.LikeTarget, targetID, likedBy uuid.UUID) (bool, error) {
	col, err := targetColumn(target)
	if err != nil {
		return false, err
	}

	insert := fmt.Sprintf(`
		INSERT INTO likes (id, liked_by, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (liked_by, %s) WHERE %s IS NOT NULL DO NOTHING
	`, col, col, col)

	tag, err := r.pool.Exec(ctx, insert, uuid.New(), likedBy, targetID)
	if err != nil {
		// A foreign key violation here means the target itself is gone;
		// the caller maps that to not-found.
		return false, db.WrapError(err, "toggle like")
	}

	if tag.RowsAffected() == 1 {
		return true, nil
	}

	// Already liked: flip the other way. If a concurrent toggle got
	// here first the delete is a no-op and the net state is unliked
	// either way.
	del := fmt.Sprintf(`DELETE FROM likes WHERE liked_by = $1 AND %s = $2`, col)
	if _, err := r.pool.Exec(ctx, del, likedBy, targetID); err != nil {
		return false, db.WrapError(err, "toggle like")
	}

	return false, nil
}

func (r *likeRepository) ListLikedVideos(ctx context.Context, likedBy uuid.UUID) ([]models.LikedVideo, error) {
	query := `
		SELECT l.created_at, ` + videoColumns + `, ` + ownerColumns + `
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, likedBy)
	if err != nil {
		return nil, db.WrapError(err, "list liked videos")
	}
	defer rows.Close()

	liked := []models.LikedVideo{}

	for rows.Next() {
		var entry models.LikedVideo
		err := rows.Scan(
			&entry.LikedAt,
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
		)
		if err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		liked = append(liked, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}

	return liked, nil
}
