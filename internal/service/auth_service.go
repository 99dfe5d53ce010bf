package service

import (
	"errors"
	"time"

	"hedgefront_backend/internal/config"
	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB       *gorm.DB
	UserRepo *repository.UserRepository
	Cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		DB:       db,
		UserRepo: userRepo,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the time source.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// RegisterInput carries the validated signup fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the user together with its profile and an incomplete
// subscription row in one transaction, then issues a token. A user without a
// profile must not exist, so the rows commit or roll back together.
func (s *AuthService) Register(input RegisterInput) (string, error) {
	_, err := s.UserRepo.FindByEmail(input.Email)
	if err == nil {
		return "", util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     model.Student,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &model.UserProfile{
			UserID:    user.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			XP:        0,
			Level:     1,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		subscription := &model.Subscription{
			UserID: user.ID,
			Status: model.SubscriptionIncomplete,
			Tier:   model.TierRookie,
		}
		return tx.Create(subscription).Error
	})
	if err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// Login verifies credentials, settles the daily streak, and issues a token.
// The stored last-login instant refreshes on every login even when the
// streak count stays put.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := s.touchStreak(user.ID); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) touchStreak(userID string) error {
	now := s.now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var profile model.UserProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrProfileMissing
			}
			return err
		}

		newStreak := UpdateStreak(profile.StreakCount, profile.LastLoginDate, now)
		return tx.Model(&model.UserProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"streak_count":    newStreak,
				"last_login_date": now,
			}).Error
	})
}
