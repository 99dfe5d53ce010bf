package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CompletedLessonMap returns lesson id -> completed for a user, consumed by
// world listing and lesson gating.
func (r *ProgressRepository) CompletedLessonMap(userID string) (map[string]bool, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(rows))
	for _, p := range rows {
		completed[p.LessonID] = p.IsCompleted
	}
	return completed, nil
}

func (r *ProgressRepository) IsCompleted(userID, lessonID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND lesson_id = ? AND is_completed = ?", userID, lessonID, true).
		Count(&count).Error
	return count > 0, err
}
