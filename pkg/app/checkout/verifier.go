package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/webhook"
	"github.com/whopu/challenge/pkg/domain/checkout"
)

const (
	ProviderHMAC   = "hmac"
	ProviderStripe = "stripe"

	StripeSignatureHeader            = "Stripe-Signature"
	stripeCheckoutCompletedEventType = "checkout.session.completed"
)

type Verifier interface {
	// Header names the request header carrying the signature.
	Header() string
	Verify(payload []byte, signature string) (*checkout.Event, error)
}

func NewVerifier(provider, secret, header string) (Verifier, error) {
	switch provider {
	case ProviderHMAC, "":
		return &hmacVerifier{secret: []byte(secret), header: header}, nil
	case ProviderStripe:
		if header == "" || header == DefaultHMACHeader {
			header = StripeSignatureHeader
		}
		return &stripeVerifier{secret: secret, header: header}, nil
	default:
		return nil, fmt.Errorf("unknown checkout provider: %s", provider)
	}
}

const DefaultHMACHeader = "X-Whop-Signature"

type hmacVerifier struct {
	secret []byte
	header string
}

func (v *hmacVerifier) Header() string {
	if v.header == "" {
		return DefaultHMACHeader
	}
	return v.header
}

// Verify expects the hex HMAC-SHA256 of the raw body, optionally prefixed
// with "sha256=". An empty secret rejects everything.
func (v *hmacVerifier) Verify(payload []byte, signature string) (*checkout.Event, error) {
	if len(v.secret) == 0 || signature == "" {
		return nil, checkout.ErrInvalidSignature
	}
	got, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil {
		return nil, checkout.ErrInvalidSignature
	}
	if !hmac.Equal(got, Sign(v.secret, payload)) {
		return nil, checkout.ErrInvalidSignature
	}
	return Classify(payload)
}

// Sign returns the raw HMAC-SHA256 of payload.
func Sign(secret, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

type stripeVerifier struct {
	secret string
	header string
}

func (v *stripeVerifier) Header() string {
	return v.header
}

func (v *stripeVerifier) Verify(payload []byte, signature string) (*checkout.Event, error) {
	e, err := webhook.ConstructEvent(payload, signature, v.secret)
	if err != nil {
		if errors.Is(err, webhook.ErrNotSigned) ||
			errors.Is(err, webhook.ErrNoValidSignature) ||
			errors.Is(err, webhook.ErrInvalidHeader) ||
			errors.Is(err, webhook.ErrTooOld) {
			return nil, checkout.ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", checkout.ErrInvalidPayload, err)
	}

	evt := &checkout.Event{
		ID:        e.ID,
		Provider:  ProviderStripe,
		Type:      e.Type,
		Completed: e.Type == stripeCheckoutCompletedEventType,
	}
	if e.Data != nil && e.Data.Object != nil {
		if details, ok := e.Data.Object["customer_details"].(map[string]interface{}); ok {
			evt.Email, _ = details["email"].(string)
		}
		if evt.Email == "" {
			evt.Email, _ = e.Data.Object["customer_email"].(string)
		}
	}
	return evt, nil
}
