// Package service implements the reservation core: collision-resistant
// code generation, the reservation lifecycle, and the single-use
// check-in engine.  The persistent store is the sole arbiter of the
// single-use invariant; the service may run as any number of concurrent
// processes and holds no in-process locks.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nivusoft/nivugate/internal/model"
	"github.com/nivusoft/nivugate/internal/notify"
	"github.com/nivusoft/nivugate/internal/queue"
	"github.com/nivusoft/nivugate/internal/repository"
)

// EventStore is the read-only view of events the core needs.
// Implementations return repository.ErrEventNotFound for unknown events.
type EventStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	GetByPublicCode(ctx context.Context, code string) (*model.Event, error)
}

// ReservationStore is the persistence contract of the core.  Insert
// must enforce reservation-code uniqueness at the store (returning
// repository.ErrDuplicateCode on collision), and CheckIn must be a
// genuinely atomic conditional mutation: apply the checked_in field
// group only if status is still "created" and used_at is null, and
// report whether a record was actually mutated.  A read followed by a
// separate write does not satisfy this contract.
type ReservationStore interface {
	Insert(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	GetByCode(ctx context.Context, code string) (*model.Reservation, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.Reservation, error)
	CheckIn(ctx context.Context, code string, operatorID *uint64, at time.Time) (bool, error)
	SetDeliveryResult(ctx context.Context, id uint64, status string, sentAt *time.Time, errDetail *string) error
}

// EventPublisher emits best-effort domain events after state changes.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error
	CheckinConfirmed(ctx context.Context, ev queue.CheckinConfirmedEvent) error
}

// CheckInOutcome is the terminal result of one redemption attempt.
// ALREADY_USED is not an error: it is the normal answer for every
// attempt that did not win the transition, and it must stay
// distinguishable from NOT_FOUND (unknown code).
type CheckInOutcome string

const (
	OutcomeOK                CheckInOutcome = "OK"
	OutcomeNotFound          CheckInOutcome = "NOT_FOUND"
	OutcomeEventNotFound     CheckInOutcome = "EVENT_NOT_FOUND"
	OutcomeEventEnded        CheckInOutcome = "EVENT_ENDED"
	OutcomeEventNotAvailable CheckInOutcome = "EVENT_NOT_AVAILABLE"
	OutcomeAlreadyUsed       CheckInOutcome = "ALREADY_USED"
)

// CheckInResult pairs the outcome with the reservation it concerned
// (nil when the code is unknown).
type CheckInResult struct {
	Outcome     CheckInOutcome
	Reservation *model.Reservation
}

// ReservationService wires the stores and collaborators together.
// Dispatcher, QR and Publisher may be nil; the corresponding side
// effects are skipped.
type ReservationService struct {
	Events       EventStore
	Reservations ReservationStore
	Dispatcher   notify.Dispatcher
	QR           notify.QRRenderer
	Publisher    EventPublisher
	BaseURL      string
	Log          *zap.Logger

	// Now supplies the current instant; overridable in tests.
	Now func() time.Time
}

// NewReservationService constructs the service with the default clock.
func NewReservationService(events EventStore, reservations ReservationStore, log *zap.Logger) *ReservationService {
	return &ReservationService{
		Events:       events,
		Reservations: reservations,
		Log:          log,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

// CheckinURL builds the public check-in URL for a reservation code.
func (s *ReservationService) CheckinURL(code string) string {
	return CheckinURL(s.BaseURL, code)
}

// EventByPublicCode returns the event behind a public URL code, or
// ErrEventNotFound.
func (s *ReservationService) EventByPublicCode(ctx context.Context, code string) (*model.Event, error) {
	ev, err := s.Events.GetByPublicCode(ctx, code)
	if errors.Is(err, repository.ErrEventNotFound) {
		return nil, ErrEventNotFound
	}
	return ev, err
}

// CreateReservation validates the event, allocates a unique reservation
// code, persists the reservation in the "created" state and then makes
// a single best-effort delivery attempt of the confirmation email.
//
// Validation order is fixed and each step is a distinct failure:
// unknown event, closed window, ended/cancelled status.  No code is
// generated or persisted unless all three pass.
func (s *ReservationService) CreateReservation(ctx context.Context, eventPublicCode string, in AttendeeInput) (*model.Reservation, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ev, err := s.Events.GetByPublicCode(ctx, eventPublicCode)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	now := s.Now()
	if !now.Before(ev.EndAt) {
		return nil, ErrEventEnded
	}
	if ev.Status == model.EventStatusEnded || ev.Status == model.EventStatusCancelled {
		return nil, ErrEventUnavailable
	}

	res := &model.Reservation{
		EventID:   ev.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Instagram: in.instagramOrNil(),
		Status:    model.ReservationStatusCreated,
	}

	// The insert is what proves uniqueness: two generators can both
	// pass an existence pre-check for the same token, but only one
	// survives the UNIQUE index.  A duplicate-key result is a retry
	// signal, bounded by codeAttempts.
	inserted := false
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := NewReservationCode()
		if err != nil {
			return nil, err
		}
		res.ReservationCode = code
		err = s.Reservations.Insert(ctx, res)
		if err == nil {
			inserted = true
			break
		}
		if errors.Is(err, repository.ErrDuplicateCode) {
			s.Log.Warn("reservation code collision, retrying",
				zap.Uint64("event_id", ev.ID), zap.Int("attempt", attempt+1))
			continue
		}
		return nil, err
	}
	if !inserted {
		return nil, ErrCodeSpaceExhausted
	}

	s.deliverConfirmation(ctx, ev, res)

	if s.Publisher != nil {
		_ = s.Publisher.ReservationCreated(ctx, queue.ReservationCreatedEvent{
			ReservationID: res.ID,
			EventID:       ev.ID,
			EventName:     ev.Name,
			AttendeeEmail: res.Email,
			CreatedAt:     now.Format(time.RFC3339),
		})
	}
	return res, nil
}

// deliverConfirmation performs the one best-effort notification attempt
// and records its outcome on the reservation's delivery fields.  The
// reservation already exists, so nothing here can fail creation, and
// the delivery update touches only the email_* field subset.
func (s *ReservationService) deliverConfirmation(ctx context.Context, ev *model.Event, res *model.Reservation) {
	if s.Dispatcher == nil {
		return
	}
	url := s.CheckinURL(res.ReservationCode)

	var png []byte
	var deliveryErr error
	if s.QR != nil {
		png, deliveryErr = s.QR.RenderPNG(ctx, url)
	}
	if deliveryErr == nil {
		plain, html := notify.ConfirmationEmail(ev.Name, res.FirstName, res.LastName)
		deliveryErr = s.Dispatcher.Send(ctx, notify.Message{
			To:        res.Email,
			Subject:   "Your invitation - " + ev.Name,
			PlainBody: plain,
			HTMLBody:  html,
			InlinePNG: png,
		})
	}

	status := model.DeliveryStatusSent
	var sentAt *time.Time
	var errDetail *string
	if deliveryErr != nil {
		status = model.DeliveryStatusFailed
		msg := deliveryErr.Error()
		errDetail = &msg
		s.Log.Warn("confirmation delivery failed",
			zap.Uint64("reservation_id", res.ID), zap.Error(deliveryErr))
	} else {
		t := s.Now()
		sentAt = &t
	}
	if err := s.Reservations.SetDeliveryResult(ctx, res.ID, status, sentAt, errDetail); err != nil {
		s.Log.Warn("record delivery result failed",
			zap.Uint64("reservation_id", res.ID), zap.Error(err))
		return
	}
	res.EmailSendStatus = &status
	res.EmailError = errDetail
	res.EmailSentAt = sentAt
}

// CheckIn redeems a reservation code.  Among any number of concurrent
// or retried calls with the same valid code, exactly one observes
// OutcomeOK; every other call observes OutcomeAlreadyUsed, whenever and
// wherever it is issued.  The guarantee comes entirely from the store's
// conditional mutation; the event guards before it are advisory and a
// race there only affects usability, never single-use safety.
func (s *ReservationService) CheckIn(ctx context.Context, code string, operatorID *uint64) (CheckInResult, error) {
	res, err := s.Reservations.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return CheckInResult{Outcome: OutcomeNotFound}, nil
		}
		return CheckInResult{}, err
	}

	ev, err := s.Events.GetByID(ctx, res.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return CheckInResult{Outcome: OutcomeEventNotFound, Reservation: res}, nil
		}
		return CheckInResult{}, err
	}
	now := s.Now()
	if !now.Before(ev.EndAt) {
		return CheckInResult{Outcome: OutcomeEventEnded, Reservation: res}, nil
	}
	if ev.Status == model.EventStatusEnded || ev.Status == model.EventStatusCancelled {
		return CheckInResult{Outcome: OutcomeEventNotAvailable, Reservation: res}, nil
	}

	won, err := s.Reservations.CheckIn(ctx, code, operatorID, now)
	if err != nil {
		return CheckInResult{}, err
	}

	// Re-read in both branches: the winner returns the updated record,
	// the loser reports the state that beat it.  The reread is
	// informational; the safety property is already settled above.
	updated, err := s.Reservations.GetByCode(ctx, code)
	if err != nil {
		return CheckInResult{}, err
	}
	if !won {
		return CheckInResult{Outcome: OutcomeAlreadyUsed, Reservation: updated}, nil
	}

	if s.Publisher != nil {
		_ = s.Publisher.CheckinConfirmed(ctx, queue.CheckinConfirmedEvent{
			ReservationID: updated.ID,
			EventID:       ev.ID,
			EventName:     ev.Name,
			ScannedByID:   operatorID,
			CheckedInAt:   now.Format(time.RFC3339),
		})
	}
	return CheckInResult{Outcome: OutcomeOK, Reservation: updated}, nil
}

// ListReservations returns an event's reservations, most recently
// created first.  Returns ErrEventNotFound for an unknown event.
func (s *ReservationService) ListReservations(ctx context.Context, eventID uint64) ([]model.Reservation, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.Reservations.ListByEvent(ctx, eventID)
}

// QRPNG renders the check-in QR for an existing reservation.  Used by
// the admin endpoint that re-issues a guest's QR at the door.
func (s *ReservationService) QRPNG(ctx context.Context, reservationID uint64) ([]byte, error) {
	res, err := s.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if s.QR == nil {
		return nil, errors.New("qr renderer not configured")
	}
	return s.QR.RenderPNG(ctx, s.CheckinURL(res.ReservationCode))
}
