package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

// DashboardRepository computes per-channel aggregates on demand.
type DashboardRepository interface {
	// ChannelStats returns subscriber, video, view and like totals for
	// the channel. A channel with no activity yields all zeros.
	ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)
	`

	stats := &models.ChannelStats{}
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&stats.TotalSubscribers,
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalLikes,
	)
	if err != nil {
		return nil, db.WrapError(err, "get channel stats")
	}

	return stats, nil
}
