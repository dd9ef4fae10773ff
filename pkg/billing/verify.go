package billing

import (
	"errors"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"llmarena_backend/internal/model"
)

// ErrNotConfigured means no webhook secret is set for any mode. This is a
// deployment problem, not a transient fault.
var ErrNotConfigured = errors.New("stripe webhooks not configured")

// WebhookSecret pairs a signing secret with the billing mode it verifies.
type WebhookSecret struct {
	Mode   model.StripeMode
	Secret string
}

// Secrets builds the ordered verification list: LIVE is tried first, TEST is
// the fallback.
func Secrets(liveSecret, testSecret string) []WebhookSecret {
	var secrets []WebhookSecret
	if liveSecret != "" {
		secrets = append(secrets, WebhookSecret{Mode: model.ModeLive, Secret: liveSecret})
	}
	if testSecret != "" {
		secrets = append(secrets, WebhookSecret{Mode: model.ModeTest, Secret: testSecret})
	}
	return secrets
}

// VerifyEvent tries each secret in order until one authenticates the payload,
// returning the event together with the mode that verified it.
func VerifyEvent(payload []byte, signature string, secrets []WebhookSecret) (stripe.Event, model.StripeMode, error) {
	if len(secrets) == 0 {
		return stripe.Event{}, "", ErrNotConfigured
	}

	var lastErr error
	for _, secret := range secrets {
		event, err := webhook.ConstructEvent(payload, signature, secret.Secret)
		if err == nil {
			return event, secret.Mode, nil
		}
		lastErr = err
	}
	return stripe.Event{}, "", lastErr
}
