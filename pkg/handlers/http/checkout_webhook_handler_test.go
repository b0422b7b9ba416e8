package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	appcheckout "github.com/whopu/challenge/pkg/app/checkout"
	checkoutmocks "github.com/whopu/challenge/pkg/app/checkout/mocks"
	"github.com/whopu/challenge/pkg/domain/checkout"
)

func newCheckoutApp(t *testing.T) (*fiber.App, *checkoutmocks.Processor) {
	processor := checkoutmocks.NewProcessor(t)
	processor.On("SignatureHeader").Return("X-Whop-Signature").Maybe()
	app := fiber.New()
	app.Post("/api/webhooks/checkout", NewCheckoutWebhookHandler(testLogger(), processor).Handle)
	return app, processor
}

func TestCheckoutWebhook_Counted(t *testing.T) {
	app, processor := newCheckoutApp(t)
	processor.On("Process", mock.Anything, []byte(`{"completed":true}`), "abc").
		Return(appcheckout.Result{Counted: true, Count: 77, Outcome: appcheckout.OutcomeCounted}, nil)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/webhooks/checkout", `{"completed":true}`,
		map[string]string{"X-Whop-Signature": "abc"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"received": true, "counted": true, "count": float64(77)}, body)
}

func TestCheckoutWebhook_NotCounted(t *testing.T) {
	app, processor := newCheckoutApp(t)
	processor.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(appcheckout.Result{Outcome: appcheckout.OutcomeDuplicate}, nil)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/webhooks/checkout", `{}`, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"received": true, "counted": false}, body)
}

func TestCheckoutWebhook_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{checkout.ErrInvalidSignature, fiber.StatusUnauthorized},
		{fmt.Errorf("%w: eof", checkout.ErrInvalidPayload), fiber.StatusBadRequest},
		{errors.New("redis down"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app, processor := newCheckoutApp(t)
			processor.On("Process", mock.Anything, mock.Anything, mock.Anything).
				Return(appcheckout.Result{}, tt.err)

			status, _ := doJSON(t, app, fiber.MethodPost, "/api/webhooks/checkout", `{}`, nil)
			assert.Equal(t, tt.status, status)
		})
	}
}
