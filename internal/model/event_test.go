package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventOpen(t *testing.T) {
	start := time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)
	ev := Event{StartAt: start, EndAt: end, Status: EventStatusScheduled}

	assert.True(t, ev.Open(start))
	assert.True(t, ev.Open(end.Add(-time.Nanosecond)))
	assert.False(t, ev.Open(end), "window is half-open")
	assert.False(t, ev.Open(end.Add(time.Hour)))

	ev.Status = EventStatusEnded
	assert.False(t, ev.Open(start))

	ev.Status = EventStatusCancelled
	assert.False(t, ev.Open(start))
}
