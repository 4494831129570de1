package adaptor

import (
	"soccer-school/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Slot         *SlotHandler
	Reservation  *ReservationHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Slot:         NewSlotHandler(service.Slot, log),
		Reservation:  NewReservationHandler(service.Reservation, log),
		Application:  NewApplicationHandler(service.Application, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
