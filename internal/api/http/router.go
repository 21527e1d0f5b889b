package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthwatch/internal/api/http/handlers"
	"github.com/spec-kit/healthwatch/internal/auth"
	"github.com/spec-kit/healthwatch/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Metrics           *handlers.MetricsHandler
	Sessions          *handlers.SessionHandler
	Reports           *handlers.ReportsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. The session middleware is attached per
// route because group middleware would also match the /sessions prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Get)

	app.Post("/sessions", cfg.Sessions.Create)

	withSession := cfg.SessionMiddleware.Handle
	admin := auth.RequireRole(domain.RoleAdmin)
	citizen := auth.RequireRole(domain.RoleUser)

	session := app.Group("/session")
	session.Get("", withSession, cfg.Sessions.Get)
	session.Delete("", withSession, cfg.Sessions.Delete)
	session.Get("/view", withSession, cfg.Sessions.View)
	session.Get("/history", withSession, cfg.Sessions.History)
	session.Post("/navigate", withSession, cfg.Sessions.Navigate)
	session.Post("/menu", withSession, cfg.Sessions.Menu)
	session.Post("/login", withSession, cfg.Sessions.Login)
	session.Post("/logout", withSession, cfg.Sessions.Logout)
	session.Post("/signup", withSession, cfg.Sessions.Signup)
	session.Post("/notifications/read", withSession, cfg.Sessions.MarkNotificationsRead)
	session.Put("/alerts", withSession, admin, cfg.Sessions.SetAlertChannel)

	reports := app.Group("/reports")
	reports.Get("", withSession, cfg.Reports.List)
	reports.Post("", withSession, citizen, cfg.Reports.Submit)
	reports.Post("/:id/status", withSession, admin, cfg.Reports.Review)
}
