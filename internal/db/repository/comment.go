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

// CommentRepository defines operations for managing video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// ListByVideo returns one page of a video's comments, newest first,
	// each with its owner projection, plus the pre-limit total.
	ListByVideo(ctx context.Context, videoID uuid.UUID, page Page) ([]models.CommentView, int, error)

	UpdateContent(ctx context.Context, commentID uuid.UUID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create comment")
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments c WHERE c.id = $1`

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, query, commentID).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}

	return comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page Page) ([]models.CommentView, int, error) {
	query := `
		SELECT ` + commentColumns + `, ` + ownerColumns + `, COUNT(*) OVER() AS total
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, videoID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, db.WrapError(err, "list comments")
	}
	defer rows.Close()

	comments := []models.CommentView{}
	total := 0

	for rows.Next() {
		var view models.CommentView
		err := rows.Scan(
			&view.ID,
			&view.VideoID,
			&view.OwnerID,
			&view.Content,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Owner.ID,
			&view.Owner.Username,
			&view.Owner.FullName,
			&view.Owner.Avatar,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan comment view: %w", err)
		}
		comments = append(comments, view)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}

	// The window total only travels with returned rows; a page past the
	// end still owes the caller the real count.
	if len(comments) == 0 && page.Offset() > 0 {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total)
		if err != nil {
			return nil, 0, db.WrapError(err, "count comments")
		}
	}

	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID uuid.UUID, content string) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, video_id, owner_id, content, created_at, updated_at
	`

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, query, commentID, content).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "update comment")
	}

	return comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return db.WrapError(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete comment")
	}
	return nil
}
