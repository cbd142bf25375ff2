package service

import "errors"

// Validation rejections surfaced by CreateReservation.  Each maps to a
// distinct caller-facing failure and none is retriable without changing
// the input.
var (
	// ErrEventNotFound: no event carries the given public code.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventEnded: the event window has closed (now >= end_at).
	ErrEventEnded = errors.New("event ended")
	// ErrEventUnavailable: the event was ended or cancelled by an admin.
	ErrEventUnavailable = errors.New("event not available")
)

// ErrCodeSpaceExhausted is returned when the code generator could not
// produce a unique reservation code within its retry bound.  With
// 128-bit codes this signals a misconfigured store rather than a full
// code space; treat it as an alerting condition, not something to retry.
var ErrCodeSpaceExhausted = errors.New("reservation code space exhausted")

// ErrInvalidAttendee wraps attendee field validation failures at the
// public boundary.
var ErrInvalidAttendee = errors.New("invalid attendee input")
