package model

import "time"

// Reservation status values.  The only legal transition is
// created -> checked_in, performed exactly once by the check-in
// engine; checked_in is terminal.
const (
	ReservationStatusCreated   = "created"
	ReservationStatusCheckedIn = "checked_in"
)

// Email delivery status values recorded after the confirmation
// email attempt.  Delivery is best effort and never retried.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// Reservation is a single attendee's entry for an event.  The
// ReservationCode is a secret capability: whoever presents it at the
// gate redeems the reservation.  It is immutable once assigned and
// unique across all reservations for the lifetime of the system.
//
// UsedAt is non-null exactly when Status is checked_in.  ScanCount
// counts successful redemptions only (so it is 0 or 1); rejected
// scans never touch ScanCount, LastScanAt or ScannedByID.
//
// Fields:
//  ID              – primary key identifier.
//  EventID         – event this reservation belongs to.
//  FirstName       – attendee first name (trimmed).
//  LastName        – attendee last name (trimmed).
//  Email           – attendee email (trimmed, lowercased).
//  Phone           – attendee phone (trimmed).
//  Instagram       – optional social handle.
//  ReservationCode – secret single-use redemption token.
//  Status          – created or checked_in.
//  UsedAt          – when the winning check-in happened.
//  ScanCount       – number of successful redemptions (0 or 1).
//  LastScanAt      – timestamp of the winning scan.
//  ScannedByID     – operator who performed the winning scan.
//  EmailSendStatus – sent/failed, nil before the delivery attempt.
//  EmailError      – delivery error detail when it failed.
//  EmailSentAt     – when the confirmation email went out.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64     // reservations.id
	EventID         uint64     // reservations.event_id
	FirstName       string     // reservations.first_name
	LastName        string     // reservations.last_name
	Email           string     // reservations.email
	Phone           string     // reservations.phone
	Instagram       *string    // reservations.instagram (nullable)
	ReservationCode string     // reservations.reservation_code (unique)
	Status          string     // reservations.status
	UsedAt          *time.Time // reservations.used_at (nullable)
	ScanCount       uint32     // reservations.scan_count
	LastScanAt      *time.Time // reservations.last_scan_at (nullable)
	ScannedByID     *uint64    // reservations.scanned_by_operator_id (nullable)
	EmailSendStatus *string    // reservations.email_send_status (nullable)
	EmailError      *string    // reservations.email_error (nullable)
	EmailSentAt     *time.Time // reservations.email_sent_at (nullable)
	CreatedAt       time.Time  // reservations.created_at
	UpdatedAt       time.Time  // reservations.updated_at
}
