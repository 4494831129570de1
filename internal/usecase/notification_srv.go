package usecase

import (
	"context"
	"fmt"

	"soccer-school/internal/data/repository"
	"soccer-school/internal/dto/request"
	"soccer-school/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	GetUserNotifications(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	items, err := s.repo.Notification.FindByUserID(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err))
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.Notification.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count notifications", zap.Error(err))
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	out := make([]response.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, response.NotificationToResponse(n))
	}

	return response.NewPaginatedResponse(out, page.Page, page.Limit(), total), nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %s", ErrNotificationNotFound, notificationID)
	}

	if err := s.repo.Notification.MarkRead(ctx, id, userID); err != nil {
		s.log.Error("Failed to mark notification read",
			zap.String("notification_id", notificationID), zap.Error(err))
		return fmt.Errorf("mark notification %s read: %w", notificationID, err)
	}

	return nil
}
