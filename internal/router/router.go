// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/nivusoft/nivugate/internal/handler"
	"github.com/nivusoft/nivugate/internal/middleware"
	"github.com/nivusoft/nivugate/internal/model"
)

// RegisterRoutes registers routes that need no authentication or
// dependencies; currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires operator authentication.  Login/refresh/logout
// live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleGate))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the guest-facing endpoints.  The reservation
// form is rate limited; event lookup is not.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, limit echo.MiddlewareFunc) {
	e.GET("/v1/events/:code", p.GetEvent)
	e.POST("/v1/events/:code/reservations", p.CreateReservation, limit)
}

// RegisterGate wires the scanning endpoint.  Both roles may scan; the
// limiter throttles runaway scanner loops without ever being part of
// the single-use guarantee.
func RegisterGate(e *echo.Echo, h *handler.CheckinHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/checkin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleGate))
	g.POST("/:code", h.CheckIn, limit)
}

// RegisterAdmin wires event management and the guest list, ADMIN only.
func RegisterAdmin(e *echo.Echo, ev *handler.AdminEventHandler, res *handler.AdminReservationHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/events", ev.Create)
	g.GET("/events", ev.List)
	g.GET("/events/:id", ev.Get)
	g.PATCH("/events/:id/status", ev.UpdateStatus)

	g.GET("/events/:id/reservations", res.ListByEvent)
	g.GET("/reservations/:id/qr", res.QR)
}
