package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.BossSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) Update(submission *model.BossSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.BossSubmission, error) {
	var submission model.BossSubmission
	err := r.DB.First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *SubmissionRepository) FindByUserAndLesson(userID, lessonID string) (*model.BossSubmission, error) {
	var submission model.BossSubmission
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// HasApproved reports whether the user holds an approved submission for the
// lesson; world gating hangs off this.
func (r *SubmissionRepository) HasApproved(userID, lessonID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.BossSubmission{}).
		Where("user_id = ? AND lesson_id = ? AND status = ?", userID, lessonID, model.SubmissionApproved).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) ListByStatus(status model.SubmissionStatus) ([]model.BossSubmission, error) {
	var submissions []model.BossSubmission
	err := r.DB.Where("status = ?", status).Order("submitted_at ASC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) CountByStatus(status model.SubmissionStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.BossSubmission{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
