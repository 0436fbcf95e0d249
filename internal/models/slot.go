package models

import (
	"time"

	"gorm.io/gorm"
)

type VehicleType string

const (
	VehicleTypeTwoWheeler  VehicleType = "two-wheeler"
	VehicleTypeFourWheeler VehicleType = "four-wheeler"
)

// IsValidVehicleType reports whether v is one of the allowed vehicle classes.
func IsValidVehicleType(v string) bool {
	return v == string(VehicleTypeTwoWheeler) || v == string(VehicleTypeFourWheeler)
}

// ParkingSlot is a single physical parking space belonging to one location.
// Availability flips only through the booking lifecycle or admin override.
type ParkingSlot struct {
	gorm.Model
	LocationID  uint        `json:"locationId" gorm:"not null;index"`
	SlotNumber  string      `json:"slotNumber" gorm:"not null"`
	IsAvailable bool        `json:"isAvailable" gorm:"not null;default:true"`
	VehicleType VehicleType `json:"vehicleType" gorm:"not null;default:'four-wheeler'"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

// TableName specifies the table name
func (ParkingSlot) TableName() string {
	return "parking_slots"
}
