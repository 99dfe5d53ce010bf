package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(profile *model.UserProfile) error {
	return r.DB.Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(profile *model.UserProfile) error {
	return r.DB.Save(profile).Error
}

// FindTopByXP returns the highest-XP profiles for the leaderboard.
func (r *ProfileRepository) FindTopByXP(limit int) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.DB.Order("xp DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}
