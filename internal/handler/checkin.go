package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nivusoft/nivugate/internal/middleware"
	"github.com/nivusoft/nivugate/internal/service"
)

// CheckinHandler serves the gate: an authenticated operator presents a
// scanned reservation code and receives a terminal outcome.
type CheckinHandler struct {
	Svc *service.ReservationService
}

func NewCheckinHandler(svc *service.ReservationService) *CheckinHandler {
	if svc == nil {
		panic("nil service passed to NewCheckinHandler")
	}
	return &CheckinHandler{Svc: svc}
}

// CheckIn handles POST /v1/checkin/:code.  The response always carries
// the outcome string; 200 for the single winning scan, 409 for
// ALREADY_USED (a normal protocol result, distinct from 404 for an
// unknown code), and 410/404 variants for the advisory event guards.
// A given attempt is final: the engine never retries on behalf of the
// caller.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	var operatorID *uint64
	if id, ok := middleware.OperatorID(c); ok {
		operatorID = &id
	}

	result, err := h.Svc.CheckIn(c.Request().Context(), code, operatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
	}

	body := echo.Map{"outcome": string(result.Outcome)}
	if result.Reservation != nil {
		body["reservation"] = newReservationView(result.Reservation, h.Svc)
	}
	return c.JSON(statusForOutcome(result.Outcome), body)
}

func statusForOutcome(outcome service.CheckInOutcome) int {
	switch outcome {
	case service.OutcomeOK:
		return http.StatusOK
	case service.OutcomeNotFound:
		return http.StatusNotFound
	case service.OutcomeEventNotFound:
		return http.StatusNotFound
	case service.OutcomeEventEnded:
		return http.StatusGone
	case service.OutcomeEventNotAvailable:
		return http.StatusConflict
	case service.OutcomeAlreadyUsed:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
