package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nivusoft/nivugate/internal/service"
)

// PublicHandler serves the unauthenticated surface: event lookup by
// public code and the reservation form.
type PublicHandler struct {
	Svc *service.ReservationService
}

func NewPublicHandler(svc *service.ReservationService) *PublicHandler {
	if svc == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Svc: svc}
}

// GetEvent handles GET /v1/events/:code.  It returns sanitized event
// data for the public reservation page.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	ev, err := h.Svc.EventByPublicCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, newEventView(ev, false))
}

// CreateReservation handles POST /v1/events/:code/reservations.  The
// body carries the attendee fields; normalization and validation happen
// in the service boundary.  Validation failures map to distinct status
// codes so the form can show a precise message.
func (h *PublicHandler) CreateReservation(c echo.Context) error {
	var in service.AttendeeInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Svc.CreateReservation(c.Request().Context(), c.Param("code"), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAttendee):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, service.ErrEventEnded):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event ended"})
		case errors.Is(err, service.ErrEventUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event not available"})
		case errors.Is(err, service.ErrCodeSpaceExhausted):
			// Systemic failure: surface as 503 so operators alert on it.
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "could not allocate reservation code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	return c.JSON(http.StatusCreated, newReservationView(res, h.Svc))
}
