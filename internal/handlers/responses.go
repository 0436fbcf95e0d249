package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/internal/services"
	"github.com/parkspot/parkspot-backend/pkg/utils"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// respondError translates domain errors into the HTTP codes of the wire
// contract. Unexpected errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(403, gin.H{"message": "Unauthorized access to booking"})
	case errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrSlotLocationMismatch),
		errors.Is(err, services.ErrInvalidVehicleType),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidRadius),
		errors.Is(err, services.ErrPaymentProcessed),
		errors.Is(err, utils.ErrInvalidDuration):
		c.JSON(400, gin.H{"message": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(500, gin.H{"message": "Internal server error"})
	}
}

// bookingJSON shapes a booking for the wire, joining in the display
// fields from the preloaded location and slot.
func bookingJSON(b *models.Booking) gin.H {
	return gin.H{
		"id":            b.ID,
		"userId":        b.UserID,
		"locationId":    b.LocationID,
		"locationName":  b.Location.Name,
		"slotId":        b.SlotID,
		"slotNumber":    b.Slot.SlotNumber,
		"startDate":     b.StartDate.UTC().Format(time.RFC3339),
		"endDate":       b.EndDate.UTC().Format(time.RFC3339),
		"duration":      b.Duration,
		"amount":        b.Amount,
		"status":        b.Status,
		"paymentStatus": b.PaymentStatus,
		"vehicleType":   b.VehicleType,
		"createdAt":     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func bookingsJSON(bookings []models.Booking) []gin.H {
	out := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingJSON(&bookings[i]))
	}
	return out
}

// locationJSON shapes a location for the wire.
func locationJSON(l *models.ParkingLocation) gin.H {
	return gin.H{
		"id":           l.ID,
		"name":         l.Name,
		"address":      l.Address,
		"latitude":     l.Latitude,
		"longitude":    l.Longitude,
		"pricePerHour": l.PricePerHour,
		"imageUrl":     l.ImageURL,
		"facilities":   l.FacilityList(),
	}
}

// slotJSON shapes a slot for the wire.
func slotJSON(s *models.ParkingSlot) gin.H {
	return gin.H{
		"id":          s.ID,
		"locationId":  s.LocationID,
		"slotNumber":  s.SlotNumber,
		"isAvailable": s.IsAvailable,
		"vehicleType": s.VehicleType,
		"lastUpdated": s.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func slotsJSON(slots []models.ParkingSlot) []gin.H {
	out := make([]gin.H, 0, len(slots))
	for i := range slots {
		out = append(out, slotJSON(&slots[i]))
	}
	return out
}

// paymentJSON shapes a payment record for the wire.
func paymentJSON(p *models.Payment) gin.H {
	return gin.H{
		"id":            p.ID,
		"userId":        p.UserID,
		"bookingId":     p.BookingID,
		"amount":        p.Amount,
		"status":        p.Status,
		"paymentMethod": p.PaymentMethod,
		"transactionId": p.TransactionID,
		"createdAt":     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// notificationJSON shapes a notification for the wire.
func notificationJSON(n *models.Notification) gin.H {
	return gin.H{
		"id":        n.ID,
		"userId":    n.UserID,
		"title":     n.Title,
		"message":   n.Message,
		"type":      n.Type,
		"isRead":    n.IsRead,
		"createdAt": n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
