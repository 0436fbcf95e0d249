package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/parkspot/parkspot-backend/internal/services"
)

// WebSocketHandler upgrades the connection and registers the user with
// the notification hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		services.HandleWebSocket(hub, c.Writer, c.Request, userId)
	}
}
