package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/parkspot/parkspot-backend/internal/services"
)

// ProcessPayment settles a pending booking
func ProcessPayment(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID     *uint  `json:"bookingId"`
			PaymentMethod string `json:"paymentMethod" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil || input.BookingID == nil {
			c.JSON(400, gin.H{"message": "Missing bookingId or paymentMethod"})
			return
		}

		payment, err := svc.Pay(c.Request.Context(), *input.BookingID, userId, input.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message":       "Payment successful",
			"payment":       paymentJSON(payment),
			"transactionId": payment.TransactionID,
		})
	}
}

// GetPaymentHistory returns the requester's payments, newest first
func GetPaymentHistory(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		payments, err := svc.History(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(payments))
		for i := range payments {
			out = append(out, paymentJSON(&payments[i]))
		}

		c.JSON(200, gin.H{"payments": out})
	}
}
