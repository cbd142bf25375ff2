package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/nivusoft/nivugate/internal/model"
)

func getEvent(h *PublicHandler, code string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events/"+code, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:code")
	c.SetParamNames("code")
	c.SetParamValues(code)
	_ = h.GetEvent(c)
	return rec
}

func postReservation(h *PublicHandler, code, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/"+code+"/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:code/reservations")
	c.SetParamNames("code")
	c.SetParamValues(code)
	_ = h.CreateReservation(c)
	return rec
}

const validBody = `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","phone":"+30 690","instagram":"@ada"}`

func TestPublicGetEvent(t *testing.T) {
	ev, _ := testEventAndReservation()
	h := NewPublicHandler(newStubService(ev, nil))

	rec := getEvent(h, ev.PublicCode)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Launch Party"`)
	// the numeric ID stays private on the public surface
	assert.NotContains(t, rec.Body.String(), `"id"`)

	rec = getEvent(h, "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicCreateReservation(t *testing.T) {
	t.Run("creates and answers 201", func(t *testing.T) {
		ev, _ := testEventAndReservation()
		h := NewPublicHandler(newStubService(ev, nil))

		rec := postReservation(h, ev.PublicCode, validBody)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"created"`)
		assert.Contains(t, rec.Body.String(), `"checkin_url":"https://gate.example.com/checkin/`)
	})

	t.Run("invalid attendee answers 400", func(t *testing.T) {
		ev, _ := testEventAndReservation()
		h := NewPublicHandler(newStubService(ev, nil))

		rec := postReservation(h, ev.PublicCode, `{"first_name":"Ada"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown event answers 404", func(t *testing.T) {
		ev, _ := testEventAndReservation()
		h := NewPublicHandler(newStubService(ev, nil))

		rec := postReservation(h, "missing", validBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("closed window answers 409", func(t *testing.T) {
		ev, _ := testEventAndReservation()
		ev.EndAt = time.Now().UTC().Add(-time.Minute)
		h := NewPublicHandler(newStubService(ev, nil))

		rec := postReservation(h, ev.PublicCode, validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("cancelled event answers 409", func(t *testing.T) {
		ev, _ := testEventAndReservation()
		ev.Status = model.EventStatusCancelled
		h := NewPublicHandler(newStubService(ev, nil))

		rec := postReservation(h, ev.PublicCode, validBody)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
