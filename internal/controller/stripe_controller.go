package controller

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/gorm"

	"llmarena_backend/pkg/billing"
	"llmarena_backend/pkg/config"
)

// StripeController terminates the billing webhook. Verification failures are
// 400 and never retried by Stripe; reconciliation failures are 500 so the
// event is redelivered.
type StripeController struct {
	reconciler *billing.Reconciler
	secrets    []billing.WebhookSecret
}

func NewStripeController(db *gorm.DB, cfg config.StripeConfig) *StripeController {
	return &StripeController{
		reconciler: billing.NewReconciler(db),
		secrets:    billing.Secrets(cfg.WebhookSecretLive, cfg.WebhookSecretTest),
	}
}

func (sc *StripeController) HandleWebhook(c *fiber.Ctx) error {
	if len(sc.secrets) == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("Stripe not configured")
	}

	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Missing signature")
	}

	event, mode, err := billing.VerifyEvent(c.Body(), signature, sc.secrets)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Webhook error: " + err.Error())
	}

	if strings.HasPrefix(string(event.Type), "customer.subscription.") {
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			log.Printf("Webhook payload decode failed for %s: %v", event.ID, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Webhook handler failed")
		}

		if err := sc.reconciler.Apply(&subscription, mode); err != nil {
			log.Printf("Webhook reconciliation failed for %s: %v", subscription.ID, err)
			return c.Status(fiber.StatusInternalServerError).SendString("Webhook handler failed")
		}
	}

	return c.JSON(fiber.Map{"received": true})
}
