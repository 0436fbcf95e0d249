package models

import (
	"strings"

	"gorm.io/gorm"
)

// ParkingLocation represents a parking facility with its own set of slots
type ParkingLocation struct {
	gorm.Model
	Name         string  `json:"name" gorm:"not null"`
	Address      string  `json:"address" gorm:"not null"`
	Latitude     float64 `json:"latitude" gorm:"not null"`
	Longitude    float64 `json:"longitude" gorm:"not null"`
	PricePerHour int     `json:"pricePerHour" gorm:"not null"` // in minor currency units
	ImageURL     string  `json:"imageUrl"`
	Facilities   string  `json:"-" gorm:"type:text"` // comma-separated

	Slots []ParkingSlot `json:"-" gorm:"foreignKey:LocationID"`
}

// TableName specifies the table name
func (ParkingLocation) TableName() string {
	return "parking_locations"
}

// FacilityList returns the facilities as a slice, preserving stored order.
func (l *ParkingLocation) FacilityList() []string {
	if l.Facilities == "" {
		return []string{}
	}
	return strings.Split(l.Facilities, ",")
}

// SetFacilities stores a facility list as comma-separated text.
func (l *ParkingLocation) SetFacilities(facilities []string) {
	l.Facilities = strings.Join(facilities, ",")
}
