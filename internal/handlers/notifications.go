package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
)

// GetNotifications lists the requester's notifications, newest first
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var notifications []models.Notification
		if err := db.Where("user_id = ?", userId).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"message": "Internal server error"})
			return
		}

		out := make([]gin.H, 0, len(notifications))
		for i := range notifications {
			out = append(out, notificationJSON(&notifications[i]))
		}

		c.JSON(200, gin.H{"notifications": out})
	}
}

// MarkNotificationRead marks one of the requester's notifications as read
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		notificationId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid notification ID"})
			return
		}

		var notification models.Notification
		if err := db.First(&notification, uint(notificationId)).Error; err != nil {
			c.JSON(404, gin.H{"message": "Notification not found"})
			return
		}

		if notification.UserID != userId {
			c.JSON(403, gin.H{"message": "Unauthorized"})
			return
		}

		notification.IsRead = true
		if err := db.Save(&notification).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to update notification"})
			return
		}

		c.JSON(200, gin.H{
			"message":      "Notification marked as read",
			"notification": notificationJSON(&notification),
		})
	}
}

// MarkAllNotificationsRead marks every unread notification of the requester
func MarkAllNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userId, false).
			Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to update notifications"})
			return
		}

		c.JSON(200, gin.H{"message": "All notifications marked as read"})
	}
}
