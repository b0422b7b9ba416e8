package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Homework
	SubmitWorksheetHandler      Handler
	SubmitMarketResearchHandler Handler
	SubmitDocLinkHandler        Handler
	SubmitStoreLinkHandler      Handler
	SubmitProfileLinkHandler    Handler

	// RSVP
	GetRSVPHandler       Handler
	IncrementRSVPHandler Handler

	// Checkout
	CheckoutWebhookHandler Handler

	// Landing
	CountdownHandler Handler

	// Admin
	ListSubmissionsHandler        Handler
	GetSubmissionHandler          Handler
	UpdateSubmissionStatusHandler Handler

	// Platform
	HealthHandler     Handler
	GetVersionHandler Handler
}
