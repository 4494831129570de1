package entity

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationApplicationStatus NotificationType = "APPLICATION_STATUS"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Type    NotificationType `db:"type"`
	Title   string           `db:"title"`
	Content string           `db:"content"`
	IsRead  bool             `db:"is_read"`
}
