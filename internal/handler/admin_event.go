package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nivusoft/nivugate/internal/model"
	"github.com/nivusoft/nivugate/internal/repository"
	"github.com/nivusoft/nivugate/internal/service"
)

// AdminEventHandler manages events.  All routes require the ADMIN role.
type AdminEventHandler struct {
	Events *repository.EventRepo
}

func NewAdminEventHandler(events *repository.EventRepo) *AdminEventHandler {
	if events == nil {
		panic("nil repository passed to NewAdminEventHandler")
	}
	return &AdminEventHandler{Events: events}
}

type createEventReq struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

// Create handles POST /v1/admin/events.
func (h *AdminEventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.StartAt.Before(req.EndAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_at must be before end_at"})
	}

	publicCode, err := service.NewEventPublicCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate public code failed"})
	}
	ev := &model.Event{
		PublicCode:  publicCode,
		Name:        req.Name,
		Description: req.Description,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
		Status:      model.EventStatusScheduled,
	}
	if err := h.Events.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, newEventView(ev, true))
}

// List handles GET /v1/admin/events.
func (h *AdminEventHandler) List(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]eventView, 0, len(events))
	for i := range events {
		views = append(views, newEventView(&events[i], true))
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /v1/admin/events/:id.
func (h *AdminEventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, newEventView(ev, true))
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/events/:id/status.  Cancelling
// or ending an event immediately blocks new reservations and check-ins
// through the availability guards.
func (h *AdminEventHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case model.EventStatusScheduled, model.EventStatusEnded, model.EventStatusCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if err := h.Events.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
