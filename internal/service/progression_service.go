package service

import (
	"errors"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XPGainResult is the outcome of a completion event.
// swagger:model XPGainResult
type XPGainResult struct {
	XPGained    int  `json:"xpGained"`
	NewTotalXP  int  `json:"newTotalXp"`
	LeveledUp   bool `json:"leveledUp"`
	NewLevel    int  `json:"newLevel"`
	StreakCount int  `json:"streakCount"`
}

// ProgressionService is the single place lesson completions are applied.
// Both direct completion and boss-battle approval route through it, so the
// idempotence and XP accounting live in exactly one spot.
type ProgressionService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db, now: time.Now}
}

// WithClock overrides the time source. Tests use this to pin "today".
func (s *ProgressionService) WithClock(now func() time.Time) *ProgressionService {
	s.now = now
	return s
}

// CompleteLesson marks the lesson complete for the user and settles XP,
// level and streak in one transaction. Completing an already-completed
// lesson is a no-op that reports current totals with zero gain.
//
// Concurrency: the unique (user_id, lesson_id) index plus guarded writes
// (update-where-incomplete, insert-on-conflict-do-nothing) make sure exactly
// one concurrent completion wins; the XP add is a single atomic increment.
func (s *ProgressionService) CompleteLesson(userID, lessonID string) (*XPGainResult, error) {
	var result *XPGainResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.CompleteLessonTx(tx, userID, lessonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteLessonTx is CompleteLesson inside an existing transaction; the
// review engine calls it when an approval must commit atomically with the
// submission row.
func (s *ProgressionService) CompleteLessonTx(tx *gorm.DB, userID, lessonID string) (*XPGainResult, error) {
	now := s.now()

	var lesson model.Lesson
	if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// every registered user gets a profile at signup; this is a
			// data-consistency bug, not a user error
			return nil, util.ErrProfileMissing
		}
		return nil, err
	}

	won, err := s.claimCompletion(tx, userID, lessonID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return &XPGainResult{
			XPGained:    0,
			NewTotalXP:  profile.XP,
			LeveledUp:   false,
			NewLevel:    profile.Level,
			StreakCount: profile.StreakCount,
		}, nil
	}

	xpGained := lesson.XPValue

	err = tx.Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", xpGained)).Error
	if err != nil {
		return nil, err
	}
	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	newStreak := UpdateStreak(profile.StreakCount, profile.LastLoginDate, now)
	updates := map[string]interface{}{
		"streak_count":    newStreak,
		"last_login_date": now,
	}

	leveledUp := false
	newLevel := LevelForXP(profile.XP)
	if newLevel > profile.Level {
		// persisted level only ever increases
		leveledUp = true
		updates["level"] = newLevel
	} else {
		newLevel = profile.Level
	}

	if err := tx.Model(&model.UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &XPGainResult{
		XPGained:    xpGained,
		NewTotalXP:  profile.XP,
		LeveledUp:   leveledUp,
		NewLevel:    newLevel,
		StreakCount: newStreak,
	}, nil
}

// claimCompletion flips the progress row to completed, creating it when
// absent. Returns false when the lesson was already completed (by this call
// racing another, or long ago); CompletedAt is only ever written here, once.
func (s *ProgressionService) claimCompletion(tx *gorm.DB, userID, lessonID string, now time.Time) (bool, error) {
	var progress model.UserProgress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	switch {
	case err == nil:
		if progress.IsCompleted {
			return false, nil
		}
		res := tx.Model(&model.UserProgress{}).
			Where("id = ? AND is_completed = ?", progress.ID, false).
			Updates(map[string]interface{}{"is_completed": true, "completed_at": now})
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = model.UserProgress{
			UserID:      userID,
			LessonID:    lessonID,
			IsCompleted: true,
			CompletedAt: &now,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(&progress)
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	default:
		return false, err
	}
}
