package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrWorldNotFound        = errors.New("world not found")
	ErrLevelNotFound        = errors.New("level not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrWorldLocked          = errors.New("world is locked: subscribe or complete the previous boss battle")
	ErrLessonLocked         = errors.New("complete the previous lesson first")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionApproved   = errors.New("submission already approved")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrProfileMissing       = errors.New("user has no profile")
	ErrSubscriptionMissing  = errors.New("user has no subscription record")
	ErrNotBossBattle        = errors.New("lesson is not a boss battle")
	ErrInvalidGradeDecision = errors.New("grade decision must be approved or rejected")
)
