package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

// SubscriptionRepository defines the subscription toggle and the
// subscriber/channel listings.
type SubscriptionRepository interface {
	// Toggle flips the subscription state for (subscriber, channel).
	// Returns true when subscribed, false when unsubscribed. The unique
	// pair constraint keeps the relation single-rowed under races; the
	// check constraint backstops the self-subscription prohibition.
	Toggle(ctx context.Context, channelID, subscriberID uuid.UUID) (bool, error)

	// ListSubscribers returns the users subscribed to a channel.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.Subscriber, error)

	// ListSubscribedChannels returns the channels a user subscribes to.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscribedChannel, error)

	// CountForChannel returns a channel's subscriber count.
	CountForChannel(ctx context.Context, channelID uuid.UUID) (int64, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, channelID, subscriberID uuid.UUID) (bool, error) {
	insert := `
		INSERT INTO subscriptions (id, channel_id, subscriber_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (channel_id, subscriber_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, insert, uuid.New(), channelID, subscriberID)
	if err != nil {
		return false, db.WrapError(err, "toggle subscription")
	}

	if tag.RowsAffected() == 1 {
		return true, nil
	}

	del := `DELETE FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2`
	if _, err := r.pool.Exec(ctx, del, channelID, subscriberID); err != nil {
		return false, db.WrapError(err, "toggle subscription")
	}

	return false, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.Subscriber, error) {
	query := `
		SELECT ` + ownerColumns + `, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, db.WrapError(err, "list subscribers")
	}
	defer rows.Close()

	subscribers := []models.Subscriber{}

	for rows.Next() {
		var sub models.Subscriber
		err := rows.Scan(
			&sub.User.ID,
			&sub.User.Username,
			&sub.User.FullName,
			&sub.User.Avatar,
			&sub.SubscribedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}

	return subscribers, nil
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscribedChannel, error) {
	query := `
		SELECT ` + ownerColumns + `, s.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, db.WrapError(err, "list subscribed channels")
	}
	defer rows.Close()

	channels := []models.SubscribedChannel{}

	for rows.Next() {
		var ch models.SubscribedChannel
		err := rows.Scan(
			&ch.Channel.ID,
			&ch.Channel.Username,
			&ch.Channel.FullName,
			&ch.Channel.Avatar,
			&ch.SubscribedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subscribed channel: %w", err)
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribed channels: %w", err)
	}

	return channels, nil
}

func (r *subscriptionRepository) CountForChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`, channelID).Scan(&count)
	if err != nil {
		return 0, db.WrapError(err, "count subscribers")
	}
	return count, nil
}
