package service

import (
	"errors"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"gorm.io/gorm"
)

// BillingService syncs subscription state from the payment provider's
// webhook. Signature verification and retry handling live at the gateway;
// this only applies an already-trusted status change.
type BillingService struct {
	SubscriptionRepo *repository.SubscriptionRepository
}

func NewBillingService(subscriptionRepo *repository.SubscriptionRepository) *BillingService {
	return &BillingService{SubscriptionRepo: subscriptionRepo}
}

// SubscriptionEvent is the normalized webhook payload.
type SubscriptionEvent struct {
	StripeCustomerID     string     `json:"stripeCustomerId" binding:"required"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId"`
	Status               string     `json:"status" binding:"required"`
	Tier                 string     `json:"tier"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
}

func (s *BillingService) ApplyEvent(event SubscriptionEvent) (*model.Subscription, error) {
	sub, err := s.SubscriptionRepo.FindByStripeCustomerID(event.StripeCustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubscriptionMissing
		}
		return nil, err
	}

	sub.Status = model.SubscriptionStatus(event.Status)
	if event.StripeSubscriptionID != "" {
		sub.StripeSubscriptionID = event.StripeSubscriptionID
	}
	if event.Tier != "" {
		sub.Tier = model.SubscriptionTier(event.Tier)
	}
	sub.CurrentPeriodEnd = event.CurrentPeriodEnd

	if err := s.SubscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
