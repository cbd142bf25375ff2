package model

import "time"

// Event status values.  An event only accepts reservations and
// check-ins while it is SCHEDULED and its window [StartAt, EndAt)
// has not closed.
const (
	EventStatusScheduled = "scheduled"
	EventStatusEnded     = "ended"
	EventStatusCancelled = "cancelled"
)

// Event represents a gated happening (party, conference, private
// function) for which single-use reservation codes are issued.
// Events are managed by admins; the reservation core treats them
// as read-only.
//
// Fields:
//  ID          – primary key identifier.
//  PublicCode  – short random code used in public URLs instead of
//                the numeric ID.
//  Name        – display name shown on the public page and in the
//                confirmation email.
//  Description – optional free text for the public page.
//  StartAt     – when the event window opens.
//  EndAt       – when the event window closes (exclusive).
//  Status      – scheduled, ended or cancelled.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
	ID          uint64    // events.id
	PublicCode  string    // events.public_code
	Name        string    // events.name
	Description *string   // events.description (nullable)
	StartAt     time.Time // events.start_at
	EndAt       time.Time // events.end_at
	Status      string    // events.status
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}

// Open reports whether the event can still accept reservations and
// check-ins at the given instant.  The window is half-open: an event
// is closed the moment now reaches EndAt.
func (e *Event) Open(now time.Time) bool {
	if e.Status == EventStatusEnded || e.Status == EventStatusCancelled {
		return false
	}
	return now.Before(e.EndAt)
}
