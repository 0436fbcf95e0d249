package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/handlers"
	"github.com/parkspot/parkspot-backend/internal/services"
)

func newPaymentRouter(db *gorm.DB, userID uint) *gin.Engine {
	bookingSvc := services.NewBookingService(db, nil)
	paymentSvc := services.NewPaymentService(db, nil)

	router := gin.New()
	authed := router.Group("/api", fakeAuth(userID, false))
	authed.POST("/bookings", handlers.CreateBooking(bookingSvc))
	authed.POST("/payments", handlers.ProcessPayment(paymentSvc))
	authed.GET("/payments/history", handlers.GetPaymentHistory(paymentSvc))
	return router
}

func TestProcessPayment(t *testing.T) {
	db := newTestDB(t)
	location, slot := seedLocation(t, db)
	router := newPaymentRouter(db, 1)

	w := doJSON(t, router, http.MethodPost, "/api/bookings", gin.H{
		"locationId": location.ID, "slotId": slot.ID, "duration": 120,
	})
	require.Equal(t, 201, w.Code)
	bookingID := decodeBody(t, w)["booking"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"bookingId":     bookingID,
		"paymentMethod": "card",
	})
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Payment successful", body["message"])
	payment := body["payment"].(map[string]interface{})
	require.EqualValues(t, 2000, payment["amount"])
	require.Equal(t, "success", payment["status"])
	require.Equal(t, "card", payment["paymentMethod"])
	require.True(t, strings.HasPrefix(body["transactionId"].(string), "tx_"))

	// A booking cannot be paid twice
	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"bookingId":     bookingID,
		"paymentMethod": "card",
	})
	require.Equal(t, 400, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"paymentMethod": "card",
	})
	require.Equal(t, 400, w.Code)
	require.Equal(t, "Missing bookingId or paymentMethod", decodeBody(t, w)["message"])

	w = doJSON(t, router, http.MethodPost, "/api/payments", gin.H{
		"bookingId":     9999,
		"paymentMethod": "card",
	})
	require.Equal(t, 404, w.Code)

	w = serve(router, newGetRequest("/api/payments/history"))
	require.Equal(t, 200, w.Code)
	payments := decodeBody(t, w)["payments"].([]interface{})
	require.Len(t, payments, 1)
}
