package model

import "time"

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// UserProgress is created lazily on the first completion event. CompletedAt
// is written exactly once; repeat completions are no-ops.
// swagger:model UserProgress
type UserProgress struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);not null;index:idx_user_lesson,unique" json:"userId"`
	LessonID    string     `gorm:"type:varchar(36);not null;index:idx_user_lesson,unique" json:"lessonId"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// BossSubmission holds at most one live row per (user, lesson): resubmission
// overwrites the row in place unless it is already approved.
// swagger:model BossSubmission
type BossSubmission struct {
	UUIDBase
	UserID             string           `gorm:"type:varchar(36);not null;index:idx_user_submission,unique" json:"userId"`
	LessonID           string           `gorm:"type:varchar(36);not null;index:idx_user_submission,unique" json:"lessonId"`
	VideoURL           string           `gorm:"size:255;not null" json:"videoUrl"`
	Status             SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`
	InstructorFeedback string           `gorm:"type:text" json:"instructorFeedback"`
	InstructorVideoURL string           `gorm:"size:255" json:"instructorVideoUrl"`
	SubmittedAt        time.Time        `gorm:"not null" json:"submittedAt"`
	ReviewedAt         *time.Time       `json:"reviewedAt"`
	ReviewedBy         *string          `gorm:"type:varchar(36)" json:"reviewedBy"`
}

func (BossSubmission) TableName() string {
	return "boss_submissions"
}
