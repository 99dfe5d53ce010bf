package service

import (
	"testing"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonAwardsXPAndLevels(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	progression := NewProgressionService(db).WithClock(fixedClock(now))

	user := seedUser(t, db, "learner@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 1000})

	result, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 1000, result.XPGained)
	assert.Equal(t, 1000, result.NewTotalXP)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 1, result.StreakCount)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, 1000, profile.XP)
	assert.Equal(t, 2, profile.Level)
	require.NotNil(t, profile.LastLoginDate)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	progression := NewProgressionService(db).WithClock(fixedClock(now))

	user := seedUser(t, db, "repeat@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 1000})

	first, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)
	firstCompletedAt := func() time.Time {
		var progress model.UserProgress
		require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&progress).Error)
		require.NotNil(t, progress.CompletedAt)
		return *progress.CompletedAt
	}()

	later := now.Add(2 * time.Hour)
	progression.WithClock(fixedClock(later))

	second, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 0, second.XPGained)
	assert.Equal(t, first.NewTotalXP, second.NewTotalXP)
	assert.False(t, second.LeveledUp)
	assert.Equal(t, first.NewLevel, second.NewLevel)

	var progress model.UserProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&progress).Error)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, firstCompletedAt.Unix(), progress.CompletedAt.Unix(), "CompletedAt is written once")
}

func TestCompleteLessonBelowThresholdKeepsLevel(t *testing.T) {
	db := newTestDB(t)
	progression := NewProgressionService(db).WithClock(fixedClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)))

	user := seedUser(t, db, "small@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 50})

	result, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)

	assert.Equal(t, 50, result.XPGained)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, result.NewLevel)
}

func TestCompleteLessonStreakAcrossDays(t *testing.T) {
	db := newTestDB(t)
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	progression := NewProgressionService(db).WithClock(fixedClock(day1))

	user := seedUser(t, db, "streak@example.com")
	_, lessons := seedWorld(t, db, 1, true,
		model.Lesson{XPValue: 50},
		model.Lesson{XPValue: 50},
		model.Lesson{XPValue: 50},
	)

	result, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakCount)

	// next calendar day extends the streak
	progression.WithClock(fixedClock(day1.AddDate(0, 0, 1)))
	result, err = progression.CompleteLesson(user.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.StreakCount)

	// a gap resets it
	progression.WithClock(fixedClock(day1.AddDate(0, 0, 5)))
	result, err = progression.CompleteLesson(user.ID, lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakCount)
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	progression := NewProgressionService(db)
	user := seedUser(t, db, "ghost@example.com")

	_, err := progression.CompleteLesson(user.ID, "no-such-lesson")
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCompleteLessonMissingProfile(t *testing.T) {
	db := newTestDB(t)
	progression := NewProgressionService(db)

	user := &model.User{Email: "orphan@example.com", Password: "hashed", Role: model.Student}
	require.NoError(t, db.Create(user).Error)
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 50})

	_, err := progression.CompleteLesson(user.ID, lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrProfileMissing)
}
