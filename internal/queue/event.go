// Package queue carries notification events between the services that
// produce them and the consumer that persists them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

const (
	// RoutingKeyApplication routes membership decision events.
	RoutingKeyApplication = "notification.application"
)

type NotificationEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewApplicationStatusEvent(userID uuid.UUID, title, content string) NotificationEvent {
	return NotificationEvent{
		UserID:    userID,
		Type:      "APPLICATION_STATUS",
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
