package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
	"github.com/parkspot/parkspot-backend/pkg/utils"
)

// BookingService owns the booking lifecycle and slot availability. Every
// mutation runs inside a single transaction so a slot is never left
// reserved without a persisted booking, or the other way round.
type BookingService struct {
	db   *gorm.DB
	sink NotificationSink
}

// NewBookingService constructs a BookingService emitting lifecycle events
// to sink. sink may be nil.
func NewBookingService(db *gorm.DB, sink NotificationSink) *BookingService {
	return &BookingService{db: db, sink: sink}
}

// CreateBookingInput carries a validated booking request.
type CreateBookingInput struct {
	UserID      uint
	LocationID  uint
	SlotID      uint
	Duration    int // in minutes
	VehicleType string
}

// Create validates the request against current slot state, computes the
// amount once, persists the booking as pending and reserves the slot.
// The slot reserve is a conditional update on is_available, so of two
// concurrent creates targeting the same slot exactly one wins and the
// other sees ErrSlotUnavailable.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	var booking models.Booking
	var location models.ParkingLocation
	var slot models.ParkingSlot

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&location, input.LocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("location %d: %w", input.LocationID, ErrNotFound)
			}
			return err
		}

		if err := tx.First(&slot, input.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("slot %d: %w", input.SlotID, ErrNotFound)
			}
			return err
		}

		if !slot.IsAvailable {
			return ErrSlotUnavailable
		}

		if slot.LocationID != location.ID {
			return ErrSlotLocationMismatch
		}

		if !models.IsValidVehicleType(input.VehicleType) {
			return ErrInvalidVehicleType
		}

		amount, err := utils.QuoteAmount(location.PricePerHour, input.VehicleType, input.Duration)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		booking = models.Booking{
			UserID:        input.UserID,
			LocationID:    location.ID,
			SlotID:        slot.ID,
			StartDate:     now,
			EndDate:       now.Add(time.Duration(input.Duration) * time.Minute),
			Duration:      input.Duration,
			Amount:        amount,
			Status:        models.BookingStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			VehicleType:   models.VehicleType(input.VehicleType),
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Reserve the slot only if it is still available. Losing the race
		// to a concurrent booking rolls back the whole creation.
		result := tx.Model(&models.ParkingSlot{}).
			Where("id = ? AND is_available = ?", slot.ID, true).
			Updates(map[string]interface{}{"is_available": false, "last_updated": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSlotUnavailable
		}

		slot.IsAvailable = false
		slot.LastUpdated = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Location = location
	booking.Slot = slot

	if s.sink != nil {
		s.sink.Emit(ctx, NotificationEvent{
			UserID:  booking.UserID,
			Title:   "New Booking Created",
			Message: fmt.Sprintf("Your parking booking at %s has been created successfully.", location.Name),
			Type:    models.NotificationTypeSuccess,
		})
	}

	return &booking, nil
}

// UpdateStatus transitions a booking to newStatus on behalf of requesterID.
// Only the booking owner or an admin may transition; terminal bookings
// reject any further transition. Completing or cancelling frees the slot
// in the same transaction, and cancelling a paid booking records a refund
// at 75% of the amount.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, requesterID uint, requesterIsAdmin bool, newStatus models.BookingStatus) (*models.Booking, error) {
	switch newStatus {
	case models.BookingStatusActive, models.BookingStatusCompleted, models.BookingStatusCancelled:
	default:
		return nil, ErrInvalidTransition
	}

	var booking models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Location").Preload("Slot").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return err
		}

		if booking.UserID != requesterID && !requesterIsAdmin {
			return ErrForbidden
		}

		if booking.Status.IsTerminal() {
			return ErrInvalidTransition
		}

		booking.Status = newStatus

		if newStatus == models.BookingStatusCancelled && booking.PaymentStatus == models.PaymentStatusPaid {
			if err := s.recordRefund(tx, &booking); err != nil {
				return err
			}
		}

		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if newStatus.IsTerminal() {
			return releaseSlot(tx, booking.SlotID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if booking.Status.IsTerminal() {
		booking.Slot.IsAvailable = true
	}

	if s.sink != nil {
		s.sink.Emit(ctx, NotificationEvent{
			UserID:  booking.UserID,
			Title:   fmt.Sprintf("Booking %s", capitalize(string(newStatus))),
			Message: fmt.Sprintf("Your parking booking has been %s.", newStatus),
			Type:    models.NotificationTypeInfo,
		})
	}

	return &booking, nil
}

// recordRefund writes the refund payment row for a cancelled paid booking.
// The 25% penalty mirrors the published cancellation policy.
func (s *BookingService) recordRefund(tx *gorm.DB, booking *models.Booking) error {
	refund := booking.Amount * 75 / 100

	var payment models.Payment
	err := tx.Where("booking_id = ? AND status = ?", booking.ID, models.PaymentRecordStatusSuccess).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	record := models.Payment{
		UserID:        booking.UserID,
		BookingID:     booking.ID,
		Amount:        -refund,
		Status:        models.PaymentRecordStatusRefunded,
		PaymentMethod: payment.PaymentMethod,
		TransactionID: "refund_" + payment.TransactionID,
	}
	if err := tx.Create(&record).Error; err != nil {
		return err
	}

	booking.PaymentStatus = models.PaymentStatusRefunded
	return nil
}

// releaseSlot idempotently marks a slot available again.
func releaseSlot(tx *gorm.DB, slotID uint) error {
	return tx.Model(&models.ParkingSlot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{"is_available": true, "last_updated": time.Now().UTC()}).Error
}

// Active returns the user's most recent active booking, or nil if none.
func (s *BookingService) Active(ctx context.Context, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Location").Preload("Slot").
		Where("user_id = ? AND status = ?", userID, models.BookingStatusActive).
		Order("created_at DESC").
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// History returns the user's completed and cancelled bookings, newest first.
func (s *BookingService) History(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Location").Preload("Slot").
		Where("user_id = ? AND status IN ?", userID,
			[]models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled}).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ByID returns one booking, applying the same owner-or-admin rule as
// UpdateStatus.
func (s *BookingService) ByID(ctx context.Context, bookingID, requesterID uint, requesterIsAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Location").Preload("Slot").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
		}
		return nil, err
	}

	if booking.UserID != requesterID && !requesterIsAdmin {
		return nil, ErrForbidden
	}
	return &booking, nil
}

// List returns all bookings, optionally filtered by status, newest first.
// Admin only; the handler enforces the admin check.
func (s *BookingService) List(ctx context.Context, status string) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).Preload("Location").Preload("Slot")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	err := query.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
