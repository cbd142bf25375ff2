package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditReservationCreated(t *testing.T) {
	line, err := auditReservationCreated([]byte(
		`{"reservation_id":12,"event_id":3,"event_name":"Launch Party","attendee_email":"ada@example.com","created_at":"2026-09-01T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Contains(t, line, "Reservation created")
	assert.Contains(t, line, "reservation_id=12")
	assert.Contains(t, line, `event="Launch Party"`)
	assert.Contains(t, line, "ada@example.com")

	_, err = auditReservationCreated([]byte("not json"))
	assert.Error(t, err)
}

func TestAuditCheckinConfirmed(t *testing.T) {
	op := `{"reservation_id":12,"event_id":3,"event_name":"Launch Party","scanned_by_id":7,"checked_in_at":"2026-09-01T22:15:00Z"}`
	line, err := auditCheckinConfirmed([]byte(op))
	require.NoError(t, err)
	assert.Contains(t, line, "Check-in confirmed")
	assert.Contains(t, line, "operator=7")

	// operator is optional on the wire
	line, err = auditCheckinConfirmed([]byte(
		`{"reservation_id":12,"event_id":3,"event_name":"Launch Party","checked_in_at":"2026-09-01T22:15:00Z"}`))
	require.NoError(t, err)
	assert.Contains(t, line, "operator=unknown")
}
