// Package repository implements MySQL persistence for events,
// reservations and operator accounts.  Sentinel errors defined here let
// the service and handler layers distinguish failure cases without
// inspecting driver errors.
package repository

import "errors"

// ErrEventNotFound is returned when no event matches the given
// identifier or public code.
var ErrEventNotFound = errors.New("event not found")

// ErrReservationNotFound is returned when no reservation matches the
// given identifier or reservation code.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrDuplicateCode is returned when an insert collides with the UNIQUE
// index on reservations.reservation_code.  The code generator treats it
// as a retry signal, not a terminal failure.
var ErrDuplicateCode = errors.New("reservation code already exists")

// ErrEmailExists is returned when registering an operator with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
