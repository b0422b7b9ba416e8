package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
	"github.com/whopu/challenge/pkg/domain/checkout"
)

var completedActions = map[string]struct{}{
	"payment.succeeded":     {},
	"membership.went_valid": {},
}

// Classify decides whether a raw checkout notification signals a completed
// purchase. Both object payloads and bare JSON strings are accepted.
func Classify(payload []byte) (*checkout.Event, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", checkout.ErrInvalidPayload, err)
	}

	evt := &checkout.Event{Provider: ProviderHMAC}
	switch v.Type() {
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		s := string(b)
		evt.Type = s
		evt.Completed = containsAny(s, "checkout-complete", "checkout_complete", "completed", "success")
	case fastjson.TypeObject:
		typ := str(v, "type")
		event := str(v, "event")
		status := str(v, "status")
		action := str(v, "action")
		_, actionCompletes := completedActions[action]

		evt.Type = firstNonEmpty(event, action, typ)
		evt.Completed = typ == "whop-checkout-complete" ||
			event == "checkout.completed" ||
			event == "checkout_completed" ||
			v.GetBool("whopCheckoutComplete") ||
			status == "completed" ||
			status == "success" ||
			(typ == "whop" && action == "checkout-complete") ||
			v.GetBool("checkoutComplete") ||
			v.GetBool("completed") ||
			strings.Contains(typ, "complete") ||
			strings.Contains(event, "complete") ||
			actionCompletes
		evt.ID = firstNonEmpty(str(v, "id"), str(v, "data", "id"))
		evt.PlanID = firstNonEmpty(str(v, "data", "plan_id"), str(v, "data", "plan", "id"), str(v, "plan_id"))
		evt.Email = firstNonEmpty(str(v, "data", "email"), str(v, "data", "user", "email"), str(v, "email"))
	default:
		return nil, fmt.Errorf("%w: unexpected %s", checkout.ErrInvalidPayload, v.Type())
	}

	if evt.ID == "" {
		sum := sha256.Sum256(payload)
		evt.ID = "sha256:" + hex.EncodeToString(sum[:])
	}
	return evt, nil
}

func str(v *fastjson.Value, keys ...string) string {
	return string(v.GetStringBytes(keys...))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
