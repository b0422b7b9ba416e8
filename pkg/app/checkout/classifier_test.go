package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whopu/challenge/pkg/domain/checkout"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		completed bool
	}{
		{"whop checkout complete type", `{"type":"whop-checkout-complete"}`, true},
		{"checkout.completed event", `{"event":"checkout.completed"}`, true},
		{"checkout_completed event", `{"event":"checkout_completed"}`, true},
		{"whopCheckoutComplete flag", `{"whopCheckoutComplete":true}`, true},
		{"status completed", `{"status":"completed"}`, true},
		{"status success", `{"status":"success"}`, true},
		{"whop action", `{"type":"whop","action":"checkout-complete"}`, true},
		{"checkoutComplete flag", `{"checkoutComplete":true}`, true},
		{"completed flag", `{"completed":true}`, true},
		{"type contains complete", `{"type":"purchase_complete"}`, true},
		{"event contains complete", `{"event":"order.complete"}`, true},
		{"payment succeeded action", `{"action":"payment.succeeded","data":{"id":"pay_1"}}`, true},
		{"membership valid action", `{"action":"membership.went_valid"}`, true},
		{"string checkout-complete", `"whop:checkout-complete"`, true},
		{"string success", `"payment success"`, true},
		{"resize message", `{"type":"resize","height":640}`, false},
		{"completed false", `{"completed":false}`, false},
		{"status pending", `{"status":"pending"}`, false},
		{"plain string", `"loaded"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := Classify([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.completed, evt.Completed)
			assert.Equal(t, ProviderHMAC, evt.Provider)
			assert.NotEmpty(t, evt.ID)
		})
	}
}

func TestClassify_Fields(t *testing.T) {
	evt, err := Classify([]byte(`{"id":"evt_9","action":"payment.succeeded","data":{"plan_id":"plan_x","user":{"email":"jane@example.com"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "evt_9", evt.ID)
	assert.Equal(t, "payment.succeeded", evt.Type)
	assert.Equal(t, "plan_x", evt.PlanID)
	assert.Equal(t, "jane@example.com", evt.Email)
}

func TestClassify_IDFallsBackToHash(t *testing.T) {
	a, err := Classify([]byte(`{"completed":true}`))
	require.NoError(t, err)
	b, err := Classify([]byte(`{"completed":true}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.ID, "sha256:"))
	assert.Equal(t, a.ID, b.ID)
}

func TestClassify_Invalid(t *testing.T) {
	for _, payload := range []string{`{not json`, `42`, `[1,2]`, ``} {
		_, err := Classify([]byte(payload))
		assert.ErrorIs(t, err, checkout.ErrInvalidPayload, payload)
	}
}
