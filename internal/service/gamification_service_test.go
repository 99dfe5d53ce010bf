package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2500, 3},
		{10000, 11},
		{-50, 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, 0, XPForLevel(1))
	assert.Equal(t, 1000, XPForLevel(2))
	assert.Equal(t, 4000, XPForLevel(5))
	assert.Equal(t, 0, XPForLevel(0))
}

func TestUpdateStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	earlierToday := now.Add(-3 * time.Hour)
	future := now.Add(48 * time.Hour)

	t.Run("first login starts at one", func(t *testing.T) {
		assert.Equal(t, 1, UpdateStreak(0, nil, now))
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		assert.Equal(t, 6, UpdateStreak(5, &yesterday, now))
	})

	t.Run("gap resets to one", func(t *testing.T) {
		assert.Equal(t, 1, UpdateStreak(12, &lastWeek, now))
	})

	t.Run("same day keeps the count", func(t *testing.T) {
		assert.Equal(t, 4, UpdateStreak(4, &earlierToday, now))
	})

	t.Run("same day never reports below one", func(t *testing.T) {
		assert.Equal(t, 1, UpdateStreak(0, &earlierToday, now))
	})

	t.Run("clock skew leaves the count alone", func(t *testing.T) {
		assert.Equal(t, 7, UpdateStreak(7, &future, now))
	})

	t.Run("midnight boundary counts as yesterday", func(t *testing.T) {
		justBeforeMidnight := time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)
		justAfterMidnight := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
		assert.Equal(t, 3, UpdateStreak(2, &justBeforeMidnight, justAfterMidnight))
	})
}
