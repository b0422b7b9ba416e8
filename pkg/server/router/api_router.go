package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/whopu/challenge/docs"
	handlers "github.com/whopu/challenge/pkg/handlers/http"
	"github.com/whopu/challenge/pkg/middleware"
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

// NewAPIRouter mounts the public routes: homework forms, RSVP, the checkout
// webhook, the countdown and the platform endpoints.
func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.SubmitWorksheetHandler == nil || h.CheckoutWebhookHandler == nil {
		return ErrMissingHandler
	}
	m := r.middlewareTransport

	for _, mw := range []middleware.Middleware{
		m.PanicRecoverMiddleware,
		m.SecurityMiddleware,
		m.CORSMiddleware,
		m.MetricsMiddleware,
	} {
		if mw != nil {
			router.Use(mw.Middleware())
		}
	}

	router.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(docs.SwaggerJSON)
	})
	router.Get("/docs/*", swagger.New(swagger.Config{
		URL: "/swagger.json",
	}))

	router.Get("/health", h.HealthHandler.Handle)
	router.Get("/version", h.GetVersionHandler.Handle)

	api := router.Group("/api")
	{
		homework := api.Group("/homework")
		if m.RateLimitMiddleware != nil {
			homework.Use(m.RateLimitMiddleware.Middleware())
		}
		homework.Post("/submit", h.SubmitWorksheetHandler.Handle)
		homework.Post("/submit-day2", h.SubmitMarketResearchHandler.Handle)
		homework.Post("/submit-day3", h.SubmitDocLinkHandler.Handle)
		homework.Post("/submit-day4", h.SubmitStoreLinkHandler.Handle)
		homework.Post("/submit-day5", h.SubmitProfileLinkHandler.Handle)

		api.Get("/rsvp", h.GetRSVPHandler.Handle)
		api.Post("/rsvp", h.IncrementRSVPHandler.Handle)

		api.Post("/webhooks/checkout", h.CheckoutWebhookHandler.Handle)

		api.Get("/countdown", h.CountdownHandler.Handle)
	}
	return nil
}
