package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
)

// PaymentService records booking payments. There is no gateway behind it;
// charges are acknowledged immediately and only the bookkeeping is real.
type PaymentService struct {
	db   *gorm.DB
	sink NotificationSink
}

func NewPaymentService(db *gorm.DB, sink NotificationSink) *PaymentService {
	return &PaymentService{db: db, sink: sink}
}

// Pay settles a pending booking: it writes the payment record and flips
// the booking to active/paid in one transaction.
func (s *PaymentService) Pay(ctx context.Context, bookingID, userID uint, paymentMethod string) (*models.Payment, error) {
	var payment models.Payment
	var booking models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return err
		}

		if booking.UserID != userID {
			return ErrForbidden
		}

		if booking.PaymentStatus != models.PaymentStatusPending {
			return ErrPaymentProcessed
		}

		payment = models.Payment{
			UserID:        userID,
			BookingID:     booking.ID,
			Amount:        booking.Amount,
			Status:        models.PaymentRecordStatusSuccess,
			PaymentMethod: paymentMethod,
			TransactionID: fmt.Sprintf("tx_%d", time.Now().UnixNano()),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		booking.Status = models.BookingStatusActive
		booking.PaymentStatus = models.PaymentStatusPaid
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(ctx, NotificationEvent{
			UserID:  userID,
			Title:   "Payment Successful",
			Message: fmt.Sprintf("Your payment of %d was successful.", booking.Amount),
			Type:    models.NotificationTypeSuccess,
		})
	}

	return &payment, nil
}

// History returns the user's payments, newest first.
func (s *PaymentService) History(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
