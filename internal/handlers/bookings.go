package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/internal/services"
)

// CreateBooking handles the creation of a new booking
func CreateBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			LocationID  *uint  `json:"locationId"`
			SlotID      *uint  `json:"slotId"`
			Duration    *int   `json:"duration"`
			VehicleType string `json:"vehicleType"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		// Required fields checked one by one so the message names the gap
		if input.LocationID == nil {
			c.JSON(400, gin.H{"message": "Missing required field: locationId"})
			return
		}
		if input.SlotID == nil {
			c.JSON(400, gin.H{"message": "Missing required field: slotId"})
			return
		}
		if input.Duration == nil {
			c.JSON(400, gin.H{"message": "Missing required field: duration"})
			return
		}

		vehicleType := input.VehicleType
		if vehicleType == "" {
			vehicleType = string(models.VehicleTypeFourWheeler)
		}

		booking, err := svc.Create(c.Request.Context(), services.CreateBookingInput{
			UserID:      userId,
			LocationID:  *input.LocationID,
			SlotID:      *input.SlotID,
			Duration:    *input.Duration,
			VehicleType: vehicleType,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		if services.RedisClient != nil {
			services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), gin.H{
				"slotId": booking.SlotID,
			})
		}

		c.JSON(201, gin.H{
			"message": "Booking created successfully",
			"booking": bookingJSON(booking),
		})
	}
}

// GetActiveBooking returns the requester's most recent active booking
func GetActiveBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		booking, err := svc.Active(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}

		if booking == nil {
			c.JSON(200, gin.H{"booking": nil})
			return
		}

		c.JSON(200, gin.H{"booking": bookingJSON(booking)})
	}
}

// GetBookingHistory returns the requester's completed and cancelled bookings
func GetBookingHistory(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		bookings, err := svc.History(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"bookings": bookingsJSON(bookings)})
	}
}

// GetBooking retrieves one booking, owner or admin only
func GetBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		isAdmin := c.GetBool("isAdmin")

		bookingId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid booking ID"})
			return
		}

		booking, err := svc.ByID(c.Request.Context(), uint(bookingId), userId, isAdmin)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"booking": bookingJSON(booking)})
	}
}

// UpdateBookingStatus transitions a booking through its lifecycle
func UpdateBookingStatus(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		isAdmin := c.GetBool("isAdmin")

		bookingId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid booking ID"})
			return
		}

		var input struct {
			Status *string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.Status == nil {
			c.JSON(400, gin.H{"message": "Missing status field"})
			return
		}

		newStatus := models.BookingStatus(*input.Status)
		switch newStatus {
		case models.BookingStatusActive, models.BookingStatusCompleted, models.BookingStatusCancelled:
		default:
			c.JSON(400, gin.H{"message": "Invalid status value"})
			return
		}

		booking, err := svc.UpdateStatus(c.Request.Context(), uint(bookingId), userId, isAdmin, newStatus)
		if err != nil {
			respondError(c, err)
			return
		}

		if services.RedisClient != nil {
			services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), gin.H{
				"slotId": booking.SlotID,
			})
		}

		c.JSON(200, gin.H{
			"message": fmt.Sprintf("Booking status updated to %s", newStatus),
			"booking": bookingJSON(booking),
		})
	}
}

// GetAllBookings lists every booking, optionally filtered by status.
// Routed behind the admin middleware.
func GetAllBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.List(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"bookings": bookingsJSON(bookings)})
	}
}
