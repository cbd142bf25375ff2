package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nivusoft/nivugate/internal/model"
	"github.com/nivusoft/nivugate/internal/repository"
	"github.com/nivusoft/nivugate/internal/service"
)

// stubEvents and stubReservations back the service with fixed data so
// the handlers can be exercised through a real Echo pipeline.
type stubEvents struct {
	event *model.Event
}

func (s *stubEvents) GetByID(context.Context, uint64) (*model.Event, error) {
	if s.event == nil {
		return nil, repository.ErrEventNotFound
	}
	cp := *s.event
	return &cp, nil
}

func (s *stubEvents) GetByPublicCode(_ context.Context, code string) (*model.Event, error) {
	if s.event == nil || s.event.PublicCode != code {
		return nil, repository.ErrEventNotFound
	}
	cp := *s.event
	return &cp, nil
}

type stubReservations struct {
	mu  sync.Mutex
	res *model.Reservation
}

func (s *stubReservations) Insert(_ context.Context, r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = 1
	cp := *r
	s.res = &cp
	return nil
}

func (s *stubReservations) GetByID(context.Context, uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil {
		return nil, repository.ErrReservationNotFound
	}
	cp := *s.res
	return &cp, nil
}

func (s *stubReservations) GetByCode(_ context.Context, code string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil || s.res.ReservationCode != code {
		return nil, repository.ErrReservationNotFound
	}
	cp := *s.res
	return &cp, nil
}

func (s *stubReservations) ListByEvent(context.Context, uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil {
		return nil, nil
	}
	return []model.Reservation{*s.res}, nil
}

func (s *stubReservations) CheckIn(_ context.Context, code string, operatorID *uint64, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil || s.res.ReservationCode != code ||
		s.res.Status != model.ReservationStatusCreated || s.res.UsedAt != nil {
		return false, nil
	}
	t := at
	s.res.Status = model.ReservationStatusCheckedIn
	s.res.UsedAt = &t
	s.res.LastScanAt = &t
	s.res.ScannedByID = operatorID
	s.res.ScanCount++
	return true, nil
}

func (s *stubReservations) SetDeliveryResult(context.Context, uint64, string, *time.Time, *string) error {
	return nil
}

func testEventAndReservation() (*model.Event, *model.Reservation) {
	now := time.Now().UTC()
	ev := &model.Event{
		ID:         1,
		PublicCode: "abc123def456",
		Name:       "Launch Party",
		StartAt:    now.Add(-time.Hour),
		EndAt:      now.Add(time.Hour),
		Status:     model.EventStatusScheduled,
	}
	res := &model.Reservation{
		ID:              1,
		EventID:         ev.ID,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "+30 690",
		ReservationCode: "0123456789abcdef0123456789abcdef",
		Status:          model.ReservationStatusCreated,
		CreatedAt:       now,
	}
	return ev, res
}

func newStubService(ev *model.Event, res *model.Reservation) *service.ReservationService {
	svc := service.NewReservationService(&stubEvents{event: ev}, &stubReservations{res: res}, zap.NewNop())
	svc.BaseURL = "https://gate.example.com"
	return svc
}

func performCheckin(h *CheckinHandler, code string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/checkin/"+code, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/checkin/:code")
	c.SetParamNames("code")
	c.SetParamValues(code)
	c.Set("operator_id", float64(7))
	_ = h.CheckIn(c)
	return rec
}

func TestCheckinHandler(t *testing.T) {
	t.Run("winning scan answers 200 with the record", func(t *testing.T) {
		ev, res := testEventAndReservation()
		h := NewCheckinHandler(newStubService(ev, res))

		rec := performCheckin(h, res.ReservationCode)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"OK"`)
		assert.Contains(t, rec.Body.String(), `"status":"checked_in"`)
	})

	t.Run("second scan answers 409 already used", func(t *testing.T) {
		ev, res := testEventAndReservation()
		h := NewCheckinHandler(newStubService(ev, res))

		require.Equal(t, http.StatusOK, performCheckin(h, res.ReservationCode).Code)
		rec := performCheckin(h, res.ReservationCode)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"ALREADY_USED"`)
	})

	t.Run("unknown code answers 404", func(t *testing.T) {
		ev, res := testEventAndReservation()
		h := NewCheckinHandler(newStubService(ev, res))

		rec := performCheckin(h, "ffffffffffffffffffffffffffffffff")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"NOT_FOUND"`)
	})

	t.Run("ended event answers 410", func(t *testing.T) {
		ev, res := testEventAndReservation()
		ev.EndAt = time.Now().UTC().Add(-time.Minute)
		h := NewCheckinHandler(newStubService(ev, res))

		rec := performCheckin(h, res.ReservationCode)
		assert.Equal(t, http.StatusGone, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"EVENT_ENDED"`)
	})

	t.Run("cancelled event answers 409", func(t *testing.T) {
		ev, res := testEventAndReservation()
		ev.Status = model.EventStatusCancelled
		h := NewCheckinHandler(newStubService(ev, res))

		rec := performCheckin(h, res.ReservationCode)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"outcome":"EVENT_NOT_AVAILABLE"`)
	})
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome service.CheckInOutcome
		status  int
	}{
		{service.OutcomeOK, http.StatusOK},
		{service.OutcomeNotFound, http.StatusNotFound},
		{service.OutcomeEventNotFound, http.StatusNotFound},
		{service.OutcomeEventEnded, http.StatusGone},
		{service.OutcomeEventNotAvailable, http.StatusConflict},
		{service.OutcomeAlreadyUsed, http.StatusConflict},
		{service.CheckInOutcome("bogus"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForOutcome(tt.outcome), "outcome %s", tt.outcome)
	}
}
