package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := NewReservationCode()
		require.NoError(t, err)
		assert.Len(t, code, 32)
		assert.Regexp(t, "^[0-9a-f]+$", code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNewEventPublicCode(t *testing.T) {
	code, err := NewEventPublicCode()
	require.NoError(t, err)
	assert.Len(t, code, 12)
	assert.Regexp(t, "^[0-9a-f]+$", code)
}

func TestCheckinURL(t *testing.T) {
	assert.Equal(t,
		"https://gate.example.com/checkin/deadbeef",
		CheckinURL("https://gate.example.com", "deadbeef"))
}

func TestAttendeeNormalize(t *testing.T) {
	in := AttendeeInput{
		FirstName: "  Ada ",
		LastName:  " Lovelace",
		Email:     " Ada@Example.COM ",
		Phone:     " +30 690 ",
		Instagram: " @ada_l ",
	}
	in.Normalize()
	assert.Equal(t, "Ada", in.FirstName)
	assert.Equal(t, "Lovelace", in.LastName)
	assert.Equal(t, "ada@example.com", in.Email)
	assert.Equal(t, "+30 690", in.Phone)
	assert.Equal(t, "ada_l", in.Instagram)
}

func TestAttendeeValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AttendeeInput)
		valid  bool
	}{
		{"complete", func(*AttendeeInput) {}, true},
		{"no instagram", func(a *AttendeeInput) { a.Instagram = "" }, true},
		{"missing first name", func(a *AttendeeInput) { a.FirstName = "" }, false},
		{"missing last name", func(a *AttendeeInput) { a.LastName = "" }, false},
		{"missing email", func(a *AttendeeInput) { a.Email = "" }, false},
		{"malformed email", func(a *AttendeeInput) { a.Email = "not-an-email" }, false},
		{"missing phone", func(a *AttendeeInput) { a.Phone = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Normalize()
			tt.mutate(&in)
			err := in.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAttendee)
			}
		})
	}
}

func TestInstagramOrNil(t *testing.T) {
	a := AttendeeInput{Instagram: ""}
	assert.Nil(t, a.instagramOrNil())

	a.Instagram = "ada"
	got := a.instagramOrNil()
	require.NotNil(t, got)
	assert.Equal(t, "ada", *got)
}
