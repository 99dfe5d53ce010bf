package service

import (
	"testing"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// one connection, or each pooled conn gets its own empty :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Subscription{},
		&model.World{},
		&model.Level{},
		&model.Lesson{},
		&model.Comment{},
		&model.UserProgress{},
		&model.BossSubmission{},
	))
	return db
}

func newAccessService(db *gorm.DB) *AccessService {
	return NewAccessService(
		repository.NewWorldRepository(db),
		repository.NewLessonRepository(db),
		repository.NewProgressRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewSubscriptionRepository(db),
	)
}

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewWorldRepository(db),
		repository.NewLessonRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCommentRepository(db),
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
		newAccessService(db),
		nil,
	)
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, Password: "hashed", Role: model.Student}
	require.NoError(t, db.Create(user).Error)

	profile := &model.UserProfile{
		UserID:    user.ID,
		FirstName: "Test",
		LastName:  "Dancer",
		XP:        0,
		Level:     1,
	}
	require.NoError(t, db.Create(profile).Error)
	return user
}

func activateSubscription(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	sub := &model.Subscription{
		UserID: userID,
		Status: model.SubscriptionActive,
		Tier:   model.TierSocialDancer,
	}
	require.NoError(t, db.Create(sub).Error)
}

// seedWorld creates a published world with a single level containing the
// given lessons, assigning order indexes by position.
func seedWorld(t *testing.T, db *gorm.DB, orderIndex int, free bool, lessons ...model.Lesson) (*model.World, []model.Lesson) {
	t.Helper()

	world := &model.World{
		Title:       "World",
		Slug:        model.GenerateUUID(),
		OrderIndex:  orderIndex,
		IsFree:      free,
		IsPublished: true,
		Difficulty:  model.DifficultyBeginner,
	}
	require.NoError(t, db.Create(world).Error)

	level := &model.Level{WorldID: world.ID, Title: "Level 1", OrderIndex: 1}
	require.NoError(t, db.Create(level).Error)

	for i := range lessons {
		lessons[i].LevelID = level.ID
		lessons[i].OrderIndex = i + 1
		if lessons[i].Title == "" {
			lessons[i].Title = "Lesson"
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return world, lessons
}

func profileOf(t *testing.T, db *gorm.DB, userID string) *model.UserProfile {
	t.Helper()
	var profile model.UserProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	return &profile
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr(s string) *string { return &s }
