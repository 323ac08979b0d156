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

// PlaylistRepository defines operations for managing playlists and
// their video membership.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error)

	// GetDetail resolves a playlist with its videos flattened to owner-
	// annotated objects, in insertion order. The playlist row is
	// fetched on its own first, so an empty video list never turns
	// into a missing playlist; dangling video references are simply
	// absent from the join result.
	GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error)

	// GetByOwnerAndName retrieves the owner's playlist with the given
	// name, used for well-known playlists like Watch Later.
	GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error)

	Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, playlistID uuid.UUID) error

	// AddVideo inserts a video reference; re-adding an existing video
	// is a no-op rather than a duplicate.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
}

type playlistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository creates a new PlaylistRepository.
func NewPlaylistRepository(pool *pgxpool.Pool) PlaylistRepository {
	return &playlistRepository{pool: pool}
}

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create playlist")
	}

	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`

	playlist := &models.Playlist{}
	err := r.pool.QueryRow(ctx, query, playlistID).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get playlist by id")
	}

	return playlist, nil
}

func (r *playlistRepository) GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error) {
	playlist, err := r.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + videoColumns + `, ` + ownerColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.seq
	`

	rows, err := r.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, db.WrapError(err, "get playlist videos")
	}
	defer rows.Close()

	videos, err := scanVideoViews(rows)
	if err != nil {
		return nil, err
	}

	return &models.PlaylistDetail{Playlist: *playlist, Videos: videos}, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "list playlists by owner")
	}
	defer rows.Close()

	playlists := []models.Playlist{}

	for rows.Next() {
		var playlist models.Playlist
		err := rows.Scan(
			&playlist.ID,
			&playlist.OwnerID,
			&playlist.Name,
			&playlist.Description,
			&playlist.CreatedAt,
			&playlist.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	return playlists, nil
}

func (r *playlistRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE owner_id = $1 AND name = $2 ORDER BY created_at LIMIT 1`

	playlist := &models.Playlist{}
	err := r.pool.QueryRow(ctx, query, ownerID, name).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get playlist by owner and name")
	}

	return playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error) {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + playlistColumns

	playlist := &models.Playlist{}
	err := r.pool.QueryRow(ctx, query, playlistID, name, description).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "update playlist")
	}

	return playlist, nil
}

func (r *playlistRepository) Delete(ctx context.Context, playlistID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, playlistID)
	if err != nil {
		return db.WrapError(err, "delete playlist")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete playlist")
	}
	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return db.WrapError(err, "add video to playlist")
	}

	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`, playlistID, videoID)
	if err != nil {
		return db.WrapError(err, "remove video from playlist")
	}
	return nil
}
