package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// Notification is a persisted lifecycle event addressed to one user.
type Notification struct {
	gorm.Model
	UserID  uint             `json:"userId" gorm:"not null;index"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message" gorm:"not null"`
	Type    NotificationType `json:"type" gorm:"not null;default:'info'"`
	IsRead  bool             `json:"isRead" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}
