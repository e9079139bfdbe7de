package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v74"

	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/payments"
)

// StripeVerifier is the slice of the Stripe client the webhook endpoint needs.
type StripeVerifier interface {
	Configured() bool
	VerifyWebhook(body []byte, sigHeader string) (stripe.Event, error)
}

type WebhookHandler struct {
	Logger     *slog.Logger
	Stripe     StripeVerifier
	Reconciler *payments.ReconcileService
}

func NewWebhookHandler(logger *slog.Logger, verifier StripeVerifier, svc *payments.ReconcileService) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Stripe: verifier, Reconciler: svc}
}

// ANY /webhooks/stripe
//
// Signature verification needs the raw request body, so nothing upstream of
// this handler may consume or rewrite it. A 500 tells Stripe to redeliver;
// a 200 acknowledges the event for good.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	if !h.Stripe.Configured() {
		h.Logger.Error("stripe webhook secrets missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if sig == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Stripe signature"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	event, err := h.Stripe.VerifyWebhook(body, sig)
	if err != nil {
		h.Logger.Warn("webhook signature rejected", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	result, err := h.Reconciler.Process(c.Request.Context(), event)
	if err != nil {
		h.Logger.Error("webhook processing failed", "event_id", event.ID, "type", event.Type, "err", err)
		if errors.Is(err, payments.ErrOrderWrite) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing webhook"})
		return
	}

	c.JSON(http.StatusOK, result)
}
