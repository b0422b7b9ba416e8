package router

import (
	"github.com/gofiber/fiber/v2"
	handlers "github.com/whopu/challenge/pkg/handlers/http"
	"github.com/whopu/challenge/pkg/middleware"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || h.ListSubmissionsHandler == nil {
		return ErrMissingHandler
	}

	admin := router.Group("/api/admin")
	if r.middlewareTransport.AdminAuthMiddleware != nil {
		admin.Use(r.middlewareTransport.AdminAuthMiddleware.Middleware())
	}
	{
		submissions := admin.Group("/submissions")
		submissions.Get("", h.ListSubmissionsHandler.Handle)
		submissions.Get("/:submission_id", h.GetSubmissionHandler.Handle)
		submissions.Put("/:submission_id/status", h.UpdateSubmissionStatusHandler.Handle)
	}
	return nil
}
