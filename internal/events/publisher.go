// Package events publishes domain events about the video lifecycle to
// RabbitMQ. Publishing is best effort: the API never fails a request
// because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/config"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

// Event kinds routed under the configured routing key prefix.
const (
	VideoPublished = "published"
	VideoViewed    = "viewed"
	VideoDeleted   = "deleted"
)

// VideoEvent is the message body for every video lifecycle event.
type VideoEvent struct {
	Kind       string    `json:"kind"`
	VideoID    uuid.UUID `json:"videoId"`
	OwnerID    uuid.UUID `json:"ownerId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits video lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, kind string, videoID, ownerID uuid.UUID)
	Close() error
}

type amqpPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.EventsConfig
	mu      sync.RWMutex
}

// NewPublisher connects to RabbitMQ and declares the topic exchange.
func NewPublisher(cfg config.EventsConfig) (Publisher, error) {
	p := &amqpPublisher{config: cfg}

	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *amqpPublisher) connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := amqp.Dial(p.config.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.config.Exchange, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", p.config.Exchange),
	)

	return nil
}

// Publish emits an event with routing key <prefix>.<kind>. Failures are
// logged and swallowed.
func (p *amqpPublisher) Publish(ctx context.Context, kind string, videoID, ownerID uuid.UUID) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.channel == nil {
		return
	}

	event := VideoEvent{
		Kind:       kind,
		VideoID:    videoID,
		OwnerID:    ownerID,
		OccurredAt: time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("Failed to marshal event", zap.Error(err))
		return
	}

	routingKey := p.config.RoutingKey + "." + kind

	err = p.channel.PublishWithContext(
		ctx,
		p.config.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    videoID.String(),
		},
	)
	if err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("kind", kind),
			zap.String("videoId", videoID.String()),
			zap.Error(err),
		)
		return
	}

	logger.Log.Debug("Published event",
		zap.String("routingKey", routingKey),
		zap.String("videoId", videoID.String()),
	)
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

// NopPublisher discards every event. Used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, kind string, videoID, ownerID uuid.UUID) {}

func (NopPublisher) Close() error { return nil }
