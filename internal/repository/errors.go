// Package repository implements raw-SQL persistence for the event-booking
// platform. This file defines sentinel error values reused across multiple
// repositories so that handlers can map failure scenarios to HTTP status
// codes without string matching.
package repository

import "errors"

// ErrEventNotFound is returned when a referenced event id does not resolve.
// Handlers translate this into a 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when a booking id does not resolve.
// Handlers translate this into a 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrEmailExists is returned when registering with an email that already
// has an account. Handlers translate this into a 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when a speaker username collides with an
// existing profile. Handlers translate this into a 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into a 403 response.
var ErrForbidden = errors.New("forbidden")
