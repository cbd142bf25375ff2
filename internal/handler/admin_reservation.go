package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nivusoft/nivugate/internal/repository"
	"github.com/nivusoft/nivugate/internal/service"
)

// AdminReservationHandler exposes the guest list and QR re-issue for
// admins.
type AdminReservationHandler struct {
	Svc *service.ReservationService
}

func NewAdminReservationHandler(svc *service.ReservationService) *AdminReservationHandler {
	if svc == nil {
		panic("nil service passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Svc: svc}
}

// ListByEvent handles GET /v1/admin/events/:id/reservations, most
// recently created first.
func (h *AdminReservationHandler) ListByEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	reservations, err := h.Svc.ListReservations(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]reservationView, 0, len(reservations))
	for i := range reservations {
		views = append(views, newReservationView(&reservations[i], h.Svc))
	}
	return c.JSON(http.StatusOK, views)
}

// QR handles GET /v1/admin/reservations/:id/qr, returning the check-in
// QR as a PNG so staff can re-send or print a guest's code.
func (h *AdminReservationHandler) QR(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	png, err := h.Svc.QRPNG(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render qr failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
