package service

import (
	"testing"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEventUpdatesSubscription(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(repository.NewSubscriptionRepository(db))

	user := seedUser(t, db, "payer@example.com")
	sub := &model.Subscription{
		UserID:           user.ID,
		StripeCustomerID: "cus_123",
		Status:           model.SubscriptionIncomplete,
		Tier:             model.TierRookie,
	}
	require.NoError(t, db.Create(sub).Error)

	periodEnd := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	updated, err := billing.ApplyEvent(SubscriptionEvent{
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_456",
		Status:               "active",
		Tier:                 "performer",
		CurrentPeriodEnd:     &periodEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, model.SubscriptionActive, updated.Status)
	assert.Equal(t, model.TierPerformer, updated.Tier)
	assert.Equal(t, "sub_456", updated.StripeSubscriptionID)
	require.NotNil(t, updated.CurrentPeriodEnd)

	var stored model.Subscription
	require.NoError(t, db.First(&stored, "user_id = ?", user.ID).Error)
	assert.Equal(t, model.SubscriptionActive, stored.Status)
	assert.True(t, stored.IsActive())
}

func TestApplyEventCancellationRevokesAccess(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(repository.NewSubscriptionRepository(db))

	user := seedUser(t, db, "churner@example.com")
	sub := &model.Subscription{
		UserID:           user.ID,
		StripeCustomerID: "cus_churn",
		Status:           model.SubscriptionActive,
		Tier:             model.TierSocialDancer,
	}
	require.NoError(t, db.Create(sub).Error)

	updated, err := billing.ApplyEvent(SubscriptionEvent{
		StripeCustomerID: "cus_churn",
		Status:           "canceled",
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive())
	assert.Equal(t, model.TierSocialDancer, updated.Tier, "tier survives cancellation")
}

func TestApplyEventUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	billing := NewBillingService(repository.NewSubscriptionRepository(db))

	_, err := billing.ApplyEvent(SubscriptionEvent{StripeCustomerID: "cus_ghost", Status: "active"})
	assert.ErrorIs(t, err, util.ErrSubscriptionMissing)
}
