package service

import (
	"fmt"
	"strings"
)

// AttendeeInput carries the loosely-typed attendee fields from the
// public reservation form.  Normalize and Validate run at the boundary
// so the lifecycle manager only ever sees clean values.
type AttendeeInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
}

// Normalize trims whitespace on every field, lowercases the email and
// strips a leading "@" from the instagram handle.
func (a *AttendeeInput) Normalize() {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Phone = strings.TrimSpace(a.Phone)
	a.Instagram = strings.TrimPrefix(strings.TrimSpace(a.Instagram), "@")
}

// Validate checks the normalized input.  Instagram is optional; all
// other fields are required.  Errors wrap ErrInvalidAttendee so callers
// can match with errors.Is.
func (a *AttendeeInput) Validate() error {
	switch {
	case a.FirstName == "":
		return fmt.Errorf("%w: first_name is required", ErrInvalidAttendee)
	case a.LastName == "":
		return fmt.Errorf("%w: last_name is required", ErrInvalidAttendee)
	case a.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidAttendee)
	case !strings.Contains(a.Email, "@"):
		return fmt.Errorf("%w: email is malformed", ErrInvalidAttendee)
	case a.Phone == "":
		return fmt.Errorf("%w: phone is required", ErrInvalidAttendee)
	}
	return nil
}

// instagramOrNil maps the optional handle to a nullable column value.
func (a *AttendeeInput) instagramOrNil() *string {
	if a.Instagram == "" {
		return nil
	}
	v := a.Instagram
	return &v
}
