package service

import "github.com/nivusoft/nivugate/internal/utils"

// reservationCodeBytes sizes the secret reservation code.  16 random
// bytes give 128 bits of entropy; the code is a bearer capability, not
// just an identifier, so it must be unguessable.
const reservationCodeBytes = 16

// codeAttempts bounds the generate-insert loop.  A collision among
// 2^128 values is essentially impossible, so hitting the bound means
// the store (or its unique index) is broken, not that the space is full.
const codeAttempts = 8

// NewReservationCode returns a fresh 32-character hex reservation code.
func NewReservationCode() (string, error) {
	return utils.RandomHex(reservationCodeBytes)
}

// NewEventPublicCode returns a short random code used in public event
// URLs.  Unlike reservation codes it is not a secret, only a stable
// handle that avoids exposing numeric IDs.
func NewEventPublicCode() (string, error) {
	return utils.RandomHex(6) // 12 hex chars
}

// CheckinURL builds the URL encoded into the QR image and embedded in
// the confirmation email: <base_url>/checkin/<reservation_code>.
func CheckinURL(baseURL, reservationCode string) string {
	return baseURL + "/checkin/" + reservationCode
}
