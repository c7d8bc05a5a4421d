package reservationRepo

import "errors"

var (
	// ErrInvalidKey signals an attempt to persist a record without a booking
	// number. This is a caller invariant violation and must propagate.
	ErrInvalidKey = errors.New("reservation: booking number must not be empty")

	// ErrNotFound signals that no reservation matches the given booking
	// number and full name.
	ErrNotFound = errors.New("reservation: not found")
)
