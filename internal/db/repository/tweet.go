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

// TweetRepository defines operations for managing tweets and the
// like-annotated tweet feed.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error)

	// Feed returns tweets newest first, each with its owner projection,
	// like count and liker IDs. A nil ownerID means the global feed.
	Feed(ctx context.Context, ownerID *uuid.UUID) ([]models.TweetView, error)

	UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, tweetID uuid.UUID) error
}

type tweetRepository struct {
	pool *pgxpool.Pool
}

// NewTweetRepository creates a new TweetRepository.
func NewTweetRepository(pool *pgxpool.Pool) TweetRepository {
	return &tweetRepository{pool: pool}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		tweet.ID,
		tweet.OwnerID,
		tweet.Content,
		tweet.CreatedAt,
		tweet.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create tweet")
	}

	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error) {
	query := `SELECT id, owner_id, content, created_at, updated_at FROM tweets WHERE id = $1`

	tweet := &models.Tweet{}
	err := r.pool.QueryRow(ctx, query, tweetID).Scan(
		&tweet.ID,
		&tweet.OwnerID,
		&tweet.Content,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get tweet by id")
	}

	return tweet, nil
}

func (r *tweetRepository) Feed(ctx context.Context, ownerID *uuid.UUID) ([]models.TweetView, error) {
	// LEFT JOIN keeps tweets with zero likes; the FILTER drops the
	// NULLs the join produces for them so likerIds stays empty.
	query := `
		SELECT t.id, t.owner_id, t.content, t.created_at, t.updated_at,
		       ` + ownerColumns + `,
		       COUNT(l.id) AS likes_count,
		       COALESCE(ARRAY_AGG(l.liked_by) FILTER (WHERE l.id IS NOT NULL), '{}') AS liker_ids
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		LEFT JOIN likes l ON l.tweet_id = t.id
		WHERE $1::uuid IS NULL OR t.owner_id = $1
		GROUP BY t.id, u.id
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "tweet feed")
	}
	defer rows.Close()

	tweets := []models.TweetView{}

	for rows.Next() {
		var view models.TweetView
		err := rows.Scan(
			&view.ID,
			&view.OwnerID,
			&view.Content,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Owner.ID,
			&view.Owner.Username,
			&view.Owner.FullName,
			&view.Owner.Avatar,
			&view.LikesCount,
			&view.LikerIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tweet view: %w", err)
		}
		if view.LikerIDs == nil {
			view.LikerIDs = []uuid.UUID{}
		}
		tweets = append(tweets, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}

	return tweets, nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	query := `
		UPDATE tweets
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, owner_id, content, created_at, updated_at
	`

	tweet := &models.Tweet{}
	err := r.pool.QueryRow(ctx, query, tweetID, content).Scan(
		&tweet.ID,
		&tweet.OwnerID,
		&tweet.Content,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "update tweet")
	}

	return tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, tweetID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, tweetID)
	if err != nil {
		return db.WrapError(err, "delete tweet")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete tweet")
	}
	return nil
}
