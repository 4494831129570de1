package repository

import (
	"soccer-school/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	PracticeSlot PracticeSlotRepository
	Reservation  ReservationRepository
	Application  ApplicationRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		PracticeSlot: NewPracticeSlotRepository(db, log),
		Reservation:  NewReservationRepository(db, log),
		Application:  NewApplicationRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
