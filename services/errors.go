package services

import "errors"

// Error kinds returned by the services. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrPhotoRetrieval        = errors.New("error retrieving photo")
	ErrPersistence           = errors.New("persistence failure")
	ErrInvalidBookingRequest = errors.New("invalid booking request")
	ErrBookingNotFound       = errors.New("no booking found")
	ErrRoomHasBookings       = errors.New("room has bookings")
)
