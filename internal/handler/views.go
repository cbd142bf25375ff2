package handler

import (
	"fmt"
	"time"

	"github.com/nivusoft/nivugate/internal/model"
	"github.com/nivusoft/nivugate/internal/service"
)

// eventView is the public shape of an event.  The numeric ID is only
// exposed on admin responses; public pages address events by their
// public code.
type eventView struct {
	ID          uint64    `json:"id,omitempty"`
	PublicCode  string    `json:"public_code"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
}

func newEventView(ev *model.Event, includeID bool) eventView {
	v := eventView{
		PublicCode:  ev.PublicCode,
		Name:        ev.Name,
		Description: ev.Description,
		StartAt:     ev.StartAt,
		EndAt:       ev.EndAt,
		Status:      ev.Status,
	}
	if includeID {
		v.ID = ev.ID
	}
	return v
}

// reservationView is the JSON shape of a reservation, including the
// derived check-in URL and the admin QR endpoint for the record.
type reservationView struct {
	ID              uint64     `json:"id"`
	EventID         uint64     `json:"event_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Instagram       *string    `json:"instagram,omitempty"`
	ReservationCode string     `json:"reservation_code"`
	Status          string     `json:"status"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	ScanCount       uint32     `json:"scan_count"`
	LastScanAt      *time.Time `json:"last_scan_at,omitempty"`
	ScannedByID     *uint64    `json:"scanned_by_id,omitempty"`
	EmailSendStatus *string    `json:"email_send_status,omitempty"`
	EmailError      *string    `json:"email_error,omitempty"`
	EmailSentAt     *time.Time `json:"email_sent_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CheckinURL      string     `json:"checkin_url"`
	QRURL           string     `json:"qr_url"`
}

func newReservationView(res *model.Reservation, svc *service.ReservationService) reservationView {
	return reservationView{
		ID:              res.ID,
		EventID:         res.EventID,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		Email:           res.Email,
		Phone:           res.Phone,
		Instagram:       res.Instagram,
		ReservationCode: res.ReservationCode,
		Status:          res.Status,
		UsedAt:          res.UsedAt,
		ScanCount:       res.ScanCount,
		LastScanAt:      res.LastScanAt,
		ScannedByID:     res.ScannedByID,
		EmailSendStatus: res.EmailSendStatus,
		EmailError:      res.EmailError,
		EmailSentAt:     res.EmailSentAt,
		CreatedAt:       res.CreatedAt,
		CheckinURL:      svc.CheckinURL(res.ReservationCode),
		QRURL:           fmt.Sprintf("/v1/admin/reservations/%d/qr", res.ID),
	}
}
