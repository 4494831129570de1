package queue

import (
	"context"
	"fmt"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DBNotifier writes notifications straight to the database. It is the
// fallback when the message broker is unavailable at startup.
type DBNotifier struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func NewDBNotifier(repo repository.NotificationRepository, log *zap.Logger) *DBNotifier {
	return &DBNotifier{
		repo: repo,
		log:  log.With(zap.String("queue", "db-notifier")),
	}
}

func (n *DBNotifier) Notify(ctx context.Context, event NotificationEvent) error {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  event.UserID,
		Type:    entity.NotificationType(event.Type),
		Title:   event.Title,
		Content: event.Content,
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	return nil
}
