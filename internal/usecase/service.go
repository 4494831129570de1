package usecase

import (
	"soccer-school/internal/data/repository"
	"soccer-school/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Slot         SlotService
	Reservation  ReservationService
	Application  ApplicationService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Slot:         NewSlotService(repo, log),
		Reservation:  NewReservationService(repo, config.Reservation.MaxActive, log),
		Application:  NewApplicationService(repo, notifier, log),
		Notification: NewNotificationService(repo, log),
	}
}
