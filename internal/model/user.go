package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

type SubscriptionStatus string

const (
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
	SubscriptionTrialing   SubscriptionStatus = "trialing"
)

type SubscriptionTier string

const (
	TierRookie       SubscriptionTier = "rookie"
	TierSocialDancer SubscriptionTier = "social_dancer"
	TierPerformer    SubscriptionTier = "performer"
)

// swagger:model User
type User struct {
	UUIDBase
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile carries the gamification state. XP only ever grows; Level is
// derived from XP but persisted so reads never recompute it.
// swagger:model UserProfile
type UserProfile struct {
	UUIDBase
	UserID        string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	FirstName     string     `gorm:"size:100;not null" json:"firstName"`
	LastName      string     `gorm:"size:100;not null" json:"lastName"`
	AvatarURL     string     `gorm:"size:255" json:"avatarUrl"`
	XP            int        `gorm:"default:0" json:"xp"`
	Level         int        `gorm:"default:1" json:"level"`
	StreakCount   int        `gorm:"default:0" json:"streakCount"`
	LastLoginDate *time.Time `json:"lastLoginDate"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// swagger:model Subscription
type Subscription struct {
	UUIDBase
	UserID               string             `gorm:"type:varchar(36);uniqueIndex;not null" json:"userId"`
	StripeCustomerID     string             `gorm:"size:100;index" json:"-"`
	StripeSubscriptionID string             `gorm:"size:100" json:"-"`
	Status               SubscriptionStatus `gorm:"size:20;default:'incomplete'" json:"status"`
	Tier                 SubscriptionTier   `gorm:"size:20;default:'rookie'" json:"tier"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive reports whether the subscription grants paid-content access.
// Only "active" does; trialing and past_due deliberately do not.
func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == SubscriptionActive
}
