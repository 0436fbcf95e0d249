package database

import (
	"gorm.io/gorm"

	"github.com/parkspot/parkspot-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.ParkingLocation{},
		&models.ParkingSlot{},
		&models.Booking{},
		&models.Payment{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	// Older databases predate the vehicle type and admin columns
	if db.Migrator().HasTable(&models.ParkingSlot{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS vehicle_type text DEFAULT 'four-wheeler'",
			"ADD COLUMN IF NOT EXISTS last_updated timestamptz",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE parking_slots " + column).Error; err != nil {
				return err
			}
		}

		db.Exec(`ALTER TABLE parking_slots DROP CONSTRAINT IF EXISTS parking_slots_vehicle_type_check`)
		db.Exec(`ALTER TABLE parking_slots ADD CONSTRAINT parking_slots_vehicle_type_check CHECK (vehicle_type IN ('two-wheeler', 'four-wheeler'))`)
	}

	if db.Migrator().HasTable(&models.User{}) {
		if err := db.Exec(`ALTER TABLE users ADD COLUMN IF NOT EXISTS is_admin boolean DEFAULT false`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'active', 'completed', 'cancelled'))`)
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_payment_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_payment_status_check CHECK (payment_status IN ('pending', 'paid', 'refunded'))`)
	}

	return nil
}
