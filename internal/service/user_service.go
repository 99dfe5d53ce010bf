package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"
	"hedgefront_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	leaderboardCacheKey = "leaderboard:xp"
	leaderboardCacheTTL = time.Minute
	leaderboardSize     = 20
)

// ProfileView is the gamification snapshot shown on the dashboard.
// swagger:model ProfileView
type ProfileView struct {
	UserID        string     `json:"userId"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	XP            int        `json:"xp"`
	Level         int        `json:"level"`
	NextLevelXP   int        `json:"nextLevelXp"`
	StreakCount   int        `json:"streakCount"`
	LastLoginDate *time.Time `json:"lastLoginDate,omitempty"`
}

// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	XPTotal   int    `json:"xpTotal"`
	Rank      int    `json:"rank"`
}

type UserService struct {
	UserRepo    *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
	Redis       *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Redis:       rdb,
	}
}

// GetProfile returns the user's gamification state plus the XP threshold of
// the next level for the progress bar.
func (s *UserService) GetProfile(userID string) (*ProfileView, error) {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileMissing
		}
		return nil, err
	}

	return &ProfileView{
		UserID:        profile.UserID,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		AvatarURL:     profile.AvatarURL,
		XP:            profile.XP,
		Level:         profile.Level,
		NextLevelXP:   XPForLevel(profile.Level + 1),
		StreakCount:   profile.StreakCount,
		LastLoginDate: profile.LastLoginDate,
	}, nil
}

// Leaderboard returns the top profiles by XP, cached briefly in redis since
// ranks shift constantly but nobody needs them fresher than a minute.
func (s *UserService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(cached), &entries); jsonErr == nil {
				return entries, nil
			}
		}
	}

	profiles, err := s.ProfileRepo.FindTopByXP(leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, LeaderboardEntry{
			UserID:    p.UserID,
			Name:      p.FirstName + " " + p.LastName,
			AvatarURL: p.AvatarURL,
			XPTotal:   p.XP,
			Rank:      i + 1,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}
