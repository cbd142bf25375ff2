// Package queue defines the message payloads exchanged over the broker
// and the best-effort publisher/consumer around them.  Reservation
// codes never appear in broker messages: the code is a redemption
// capability and stays confined to the primary store and the
// confirmation email.
package queue

// ReservationCreatedEvent is published after a reservation is persisted.
// Downstream consumers can log or trigger analytics without touching
// the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	EventID       uint64 `json:"event_id"`
	EventName     string `json:"event_name"`
	AttendeeEmail string `json:"attendee_email"`
	CreatedAt     string `json:"created_at"`
}

// CheckinConfirmedEvent is published after the single winning check-in
// transition.  Rejected scan attempts are never published.
type CheckinConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	EventID       uint64  `json:"event_id"`
	EventName     string  `json:"event_name"`
	ScannedByID   *uint64 `json:"scanned_by_id,omitempty"`
	CheckedInAt   string  `json:"checked_in_at"`
}
