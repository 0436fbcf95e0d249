package utils

import (
	"errors"
)

// TwoWheelerRatePercent is the share of the base hourly rate charged for
// two-wheelers.
const TwoWheelerRatePercent = 60

// ErrInvalidDuration is returned when a booking duration is not a positive
// number of minutes.
var ErrInvalidDuration = errors.New("duration must be a positive number of minutes")

// QuoteAmount computes the booking amount in minor currency units from the
// location's hourly base rate, the vehicle class and the duration in minutes.
// All intermediate math truncates toward zero so quotes are reproducible to
// the exact unit.
func QuoteAmount(basePricePerHour int, vehicleType string, durationMinutes int) (int, error) {
	if durationMinutes <= 0 {
		return 0, ErrInvalidDuration
	}

	rate := basePricePerHour
	if vehicleType == "two-wheeler" {
		rate = basePricePerHour * TwoWheelerRatePercent / 100
	}

	return rate * durationMinutes / 60, nil
}
