package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further status transitions are permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking reserves one slot for one user over a bounded time window.
// EndDate is always StartDate plus Duration; Amount is computed once at
// creation and never recomputed.
type Booking struct {
	gorm.Model
	UserID        uint          `json:"userId" gorm:"not null;index"`
	LocationID    uint          `json:"locationId" gorm:"not null"`
	SlotID        uint          `json:"slotId" gorm:"not null"`
	StartDate     time.Time     `json:"startDate" gorm:"not null"`
	EndDate       time.Time     `json:"endDate" gorm:"not null"`
	Duration      int           `json:"duration" gorm:"not null"` // in minutes
	Amount        int           `json:"amount" gorm:"not null"`   // in minor currency units
	Status        BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	VehicleType   VehicleType   `json:"vehicleType" gorm:"not null"`

	Location ParkingLocation `json:"-" gorm:"foreignKey:LocationID"`
	Slot     ParkingSlot     `json:"-" gorm:"foreignKey:SlotID"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}
