package service

import (
	"testing"

	"hedgefront_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldLocked(t *testing.T) {
	free := &model.World{IsFree: true, OrderIndex: 3}
	firstPaid := &model.World{IsFree: false, OrderIndex: 1}
	laterPaid := &model.World{IsFree: false, OrderIndex: 2}
	prev := &model.World{OrderIndex: 1}
	boss := &model.Lesson{IsBossBattle: true}

	t.Run("free world is always open", func(t *testing.T) {
		assert.False(t, WorldLocked(free, false, prev, boss, false))
	})

	t.Run("paid world needs a subscription", func(t *testing.T) {
		assert.True(t, WorldLocked(firstPaid, false, nil, nil, false))
		assert.False(t, WorldLocked(firstPaid, true, nil, nil, false))
	})

	t.Run("later world needs the previous boss approved", func(t *testing.T) {
		assert.True(t, WorldLocked(laterPaid, true, prev, boss, false))
		assert.False(t, WorldLocked(laterPaid, true, prev, boss, true))
	})

	t.Run("previous world without a boss does not gate", func(t *testing.T) {
		assert.False(t, WorldLocked(laterPaid, true, prev, nil, false))
	})

	t.Run("missing previous world unlocks", func(t *testing.T) {
		assert.False(t, WorldLocked(laterPaid, true, nil, nil, false))
	})
}

func TestLessonLocked(t *testing.T) {
	prev := &model.Lesson{}

	assert.True(t, LessonLocked(true, nil, false), "world lock dominates")
	assert.False(t, LessonLocked(false, nil, false), "first lesson is open")
	assert.True(t, LessonLocked(false, prev, false), "incomplete predecessor locks")
	assert.False(t, LessonLocked(false, prev, true), "completed predecessor unlocks")
}

func TestIsWorldLocked(t *testing.T) {
	db := newTestDB(t)
	access := newAccessService(db)
	user := seedUser(t, db, "gate@example.com")

	_, bossLessons := seedWorld(t, db, 1, true,
		model.Lesson{XPValue: 50},
		model.Lesson{XPValue: 150, IsBossBattle: true},
	)
	world2, _ := seedWorld(t, db, 2, false, model.Lesson{XPValue: 50})

	t.Run("no subscription locks paid world", func(t *testing.T) {
		locked, err := access.IsWorldLocked(user.ID, world2, false)
		require.NoError(t, err)
		assert.True(t, locked)
	})

	activateSubscription(t, db, user.ID)

	t.Run("subscribed but previous boss not approved", func(t *testing.T) {
		locked, err := access.IsWorldLocked(user.ID, world2, true)
		require.NoError(t, err)
		assert.True(t, locked)
	})

	t.Run("approved boss opens the next world", func(t *testing.T) {
		sub := &model.BossSubmission{
			UserID:   user.ID,
			LessonID: bossLessons[1].ID,
			VideoURL: "https://cdn.example.com/v.mp4",
			Status:   model.SubmissionApproved,
		}
		require.NoError(t, db.Create(sub).Error)

		locked, err := access.IsWorldLocked(user.ID, world2, true)
		require.NoError(t, err)
		assert.False(t, locked)
	})
}

func TestIsWorldLockedNoBossInPreviousWorld(t *testing.T) {
	db := newTestDB(t)
	access := newAccessService(db)
	user := seedUser(t, db, "noboss@example.com")
	activateSubscription(t, db, user.ID)

	seedWorld(t, db, 1, true, model.Lesson{XPValue: 50})
	world2, _ := seedWorld(t, db, 2, false, model.Lesson{XPValue: 50})

	locked, err := access.IsWorldLocked(user.ID, world2, true)
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestSubscriptionActive(t *testing.T) {
	db := newTestDB(t)
	access := newAccessService(db)
	user := seedUser(t, db, "subs@example.com")

	active, err := access.SubscriptionActive(user.ID)
	require.NoError(t, err)
	assert.False(t, active, "missing row means no access")

	sub := &model.Subscription{UserID: user.ID, Status: model.SubscriptionTrialing, Tier: model.TierRookie}
	require.NoError(t, db.Create(sub).Error)

	active, err = access.SubscriptionActive(user.ID)
	require.NoError(t, err)
	assert.False(t, active, "trialing does not grant paid access")

	require.NoError(t, db.Model(&model.Subscription{}).
		Where("user_id = ?", user.ID).
		Update("status", model.SubscriptionActive).Error)

	active, err = access.SubscriptionActive(user.ID)
	require.NoError(t, err)
	assert.True(t, active)
}
