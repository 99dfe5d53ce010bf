package controller

import (
	"crypto/subtle"

	"hedgefront_backend/internal/config"
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BillingController struct {
	Billing *service.BillingService
	Config  *config.Config
}

func NewBillingController(billing *service.BillingService, cfg *config.Config) *BillingController {
	return &BillingController{Billing: billing, Config: cfg}
}

// @Summary Billing provider webhook for subscription lifecycle events
// @Tags billing
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "shared webhook secret"
// @Param body body service.SubscriptionEvent true "event"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/billing/webhook [post]
func (c *BillingController) Webhook(ctx *gin.Context) {
	secret := ctx.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(c.Config.Billing.WebhookSecret)) != 1 {
		util.Unauthorized(ctx)
		return
	}

	var event service.SubscriptionEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subscription, err := c.Billing.ApplyEvent(event)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, subscription)
}
