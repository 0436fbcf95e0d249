package models

import (
	"gorm.io/gorm"
)

type PaymentRecordStatus string

const (
	PaymentRecordStatusSuccess  PaymentRecordStatus = "success"
	PaymentRecordStatusFailed   PaymentRecordStatus = "failed"
	PaymentRecordStatusRefunded PaymentRecordStatus = "refunded"
)

// Payment is a bookkeeping record of a booking charge or refund. Refunds
// carry a negative amount.
type Payment struct {
	gorm.Model
	UserID        uint                `json:"userId" gorm:"not null;index"`
	BookingID     uint                `json:"bookingId" gorm:"not null"`
	Amount        int                 `json:"amount" gorm:"not null"` // in minor currency units
	Status        PaymentRecordStatus `json:"status" gorm:"not null"`
	PaymentMethod string              `json:"paymentMethod" gorm:"not null"`
	TransactionID string              `json:"transactionId"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}
