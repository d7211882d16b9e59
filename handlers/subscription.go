package handlers

import (
	"io"
	"net/http"

	"fitbook/models"
	"fitbook/services/subscription"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody caps provider webhook payloads at 1 MiB.
const maxWebhookBody = 1 << 20

// SubscriptionHandler exposes checkout, the provider webhook and the
// subscription lifecycle endpoints.
type SubscriptionHandler struct {
	svc subscription.SubscriptionService
}

func NewSubscriptionHandler(svc subscription.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// StartCheckoutHandler creates a hosted checkout session.
func (h *SubscriptionHandler) StartCheckoutHandler(c *gin.Context) {
	var req models.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.svc.StartCheckout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StripeWebhookHandler receives provider events. Signature verification is
// the authentication; the route is registered without auth middleware.
func (h *SubscriptionHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Stripe-Signature header"})
		return
	}

	if err := h.svc.HandleStripeEvent(c.Request.Context(), payload, sigHeader); err != nil {
		utils.GetLogger().Error("webhook processing failed", zap.Error(err))
		// Non-2xx makes the provider retry the delivery.
		c.JSON(http.StatusBadRequest, gin.H{"error": "event not processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSubscriptionHandler fetches one subscription by ID.
func (h *SubscriptionHandler) GetSubscriptionHandler(c *gin.Context) {
	sub, err := h.svc.GetSubscription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// PauseSubscriptionHandler pauses a subscription, optionally until a resume
// date.
func (h *SubscriptionHandler) PauseSubscriptionHandler(c *gin.Context) {
	var req models.PauseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.svc.Pause(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscription paused"})
}

// ResumeSubscriptionHandler reactivates a paused subscription.
func (h *SubscriptionHandler) ResumeSubscriptionHandler(c *gin.Context) {
	if err := h.svc.Resume(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscription resumed"})
}

// CancelSubscriptionHandler terminates a subscription.
func (h *SubscriptionHandler) CancelSubscriptionHandler(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscription cancelled"})
}
