package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/internal/services"
)

func TestHubDeliversNotificationToUser(t *testing.T) {
	hub := services.NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		services.HandleWebSocket(hub, w, r, 7)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool {
		return hub.GetConnectedClients() == 1
	}, time.Second, 10*time.Millisecond)

	// A message addressed to another user never reaches this connection
	hub.SendNotification(8, services.NotificationEvent{
		UserID: 8, Title: "Not Yours", Message: "nope", Type: models.NotificationTypeInfo,
	})
	hub.SendNotification(7, services.NotificationEvent{
		UserID:  7,
		Title:   "New Booking Created",
		Message: "Your parking booking at Central Parking has been created successfully.",
		Type:    models.NotificationTypeSuccess,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var message struct {
		Type string                     `json:"type"`
		Data services.NotificationEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &message))
	require.Equal(t, "notification", message.Type)
	require.EqualValues(t, 7, message.Data.UserID)
	require.Equal(t, "New Booking Created", message.Data.Title)
}
