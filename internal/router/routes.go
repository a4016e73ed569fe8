package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/landing-api/internal/config"
	"github.com/octobees/landing-api/internal/handler"
	middlewarepkg "github.com/octobees/landing-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Contact    *handler.ContactHandler
	Newsletter *handler.NewsletterHandler
	Waitlist   *handler.WaitlistHandler
	Slack      *handler.SlackHandler
}

// Register wires all HTTP routes for the API. The contact submission route
// carries its own tighter rate limit on top of the global one.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	api := e.Group("/api",
		middlewarepkg.RateLimit(cfg.RateLimitGlobal, "Too many requests from this IP, please try again later."))

	api.GET("/health", handlers.Health.Check)

	contact := api.Group("/contact")
	contact.POST("",
		handlers.Contact.Submit,
		middlewarepkg.RateLimit(cfg.RateLimitContact, "Too many contact submissions from this IP"))
	contact.GET("", handlers.Contact.List)
	contact.GET("/:id", handlers.Contact.Get)
	contact.PATCH("/:id/status", handlers.Contact.UpdateStatus)
	contact.DELETE("/:id", handlers.Contact.Delete)

	api.POST("/newsletter", handlers.Newsletter.Subscribe)
	api.GET("/newsletter", handlers.Newsletter.List)
	api.DELETE("/newsletter/:email", handlers.Newsletter.Unsubscribe)

	api.POST("/waitlist", handlers.Waitlist.Join)

	api.POST("/slack/events", handlers.Slack.Events)
	api.POST("/slack/message", handlers.Slack.SendMessage)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Endpoint not found",
			"path":    c.Request().URL.Path,
		})
	})
}
