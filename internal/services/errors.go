package services

import "errors"

// Domain errors returned by the booking and parking services. Handlers
// translate these into HTTP status codes; anything else is a 500.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrSlotUnavailable      = errors.New("selected slot is not available")
	ErrSlotLocationMismatch = errors.New("slot does not belong to specified location")
	ErrInvalidVehicleType   = errors.New("invalid vehicle type")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInvalidRadius        = errors.New("radius must not be negative")
	ErrPaymentProcessed     = errors.New("payment has already been processed")
)
