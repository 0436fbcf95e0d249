package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
)

// NotificationEvent is a lifecycle event addressed to one user.
type NotificationEvent struct {
	UserID  uint                    `json:"userId"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
}

// NotificationSink receives booking lifecycle events. Delivery is
// fire-and-forget: a failing sink must never roll back the transaction
// that produced the event.
type NotificationSink interface {
	Emit(ctx context.Context, event NotificationEvent)
}

// DatabaseNotificationSink persists each event as a Notification row and
// pushes it to the user over the WebSocket hub when they are connected.
type DatabaseNotificationSink struct {
	db  *gorm.DB
	hub *Hub
}

// NewDatabaseNotificationSink creates a sink writing to db. hub may be nil.
func NewDatabaseNotificationSink(db *gorm.DB, hub *Hub) *DatabaseNotificationSink {
	return &DatabaseNotificationSink{db: db, hub: hub}
}

func (s *DatabaseNotificationSink) Emit(ctx context.Context, event NotificationEvent) {
	notification := models.Notification{
		UserID:  event.UserID,
		Title:   event.Title,
		Message: event.Message,
		Type:    event.Type,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		log.Printf("Failed to persist notification for user %d: %v", event.UserID, err)
	}

	if s.hub != nil {
		s.hub.SendNotification(event.UserID, event)
	}
}
