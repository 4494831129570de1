package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const notificationQueueName = "notifications.store"

// Consumer drains notification events and persists them so members see
// them in the app. It runs a reconnect loop with capped backoff until the
// context is cancelled.
type Consumer struct {
	url      string
	exchange string
	repo     repository.NotificationRepository
	log      *zap.Logger
}

func NewConsumer(url, exchange string, repo repository.NotificationRepository, log *zap.Logger) *Consumer {
	return &Consumer{
		url:      url,
		exchange: exchange,
		repo:     repo,
		log:      log.With(zap.String("queue", "consumer")),
	}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("Failed to dial broker, retrying",
				zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		}
		_ = conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(notificationQueueName, "notification.#", c.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				c.log.Error("Failed to handle notification event", zap.Error(err))
				// Reject without requeue to avoid a tight redelivery loop
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var event NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: event.CreatedAt,
		},
		UserID:  event.UserID,
		Type:    entity.NotificationType(event.Type),
		Title:   event.Title,
		Content: event.Content,
	}

	if err := c.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	c.log.Info("Notification stored",
		zap.String("notification_id", notification.ID.String()),
		zap.String("user_id", event.UserID.String()))
	return nil
}
