package services

import (
	"errors"
)

// Sentinel errors returned by the service layer. The routes layer maps them
// to HTTP status codes; everything else surfaces as a generic 500.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrValidation    = errors.New("invalid input")

	// Booking lifecycle
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	ErrStatusConflict    = errors.New("booking was modified concurrently")

	// Payment
	ErrAlreadyPaid = errors.New("booking is already paid")

	// Reviews
	ErrReviewExists        = errors.New("review already submitted for this booking")
	ErrBookingNotCompleted = errors.New("can only review completed bookings")
)
