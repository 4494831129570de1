package response

import (
	"time"

	"soccer-school/internal/data/entity"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Content:   n.Content,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func NotificationsToResponse(items []entity.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(items))
	for i := range items {
		responses = append(responses, NotificationToResponse(&items[i]))
	}
	return responses
}
