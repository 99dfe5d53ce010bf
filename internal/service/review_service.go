package service

import (
	"errors"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"gorm.io/gorm"
)

// ReviewService runs the boss-battle submission state machine:
// pending -> approved | rejected, with resubmission folding back into the
// existing row unless it was approved.
type ReviewService struct {
	DB             *gorm.DB
	SubmissionRepo *repository.SubmissionRepository
	LessonRepo     *repository.LessonRepository
	Progression    *ProgressionService
	now            func() time.Time
}

func NewReviewService(db *gorm.DB, submissionRepo *repository.SubmissionRepository, lessonRepo *repository.LessonRepository, progression *ProgressionService) *ReviewService {
	return &ReviewService{
		DB:             db,
		SubmissionRepo: submissionRepo,
		LessonRepo:     lessonRepo,
		Progression:    progression,
		now:            time.Now,
	}
}

// WithClock overrides the time source.
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// Submit records a boss-battle video. A pending or rejected submission for
// the same (user, lesson) is overwritten in place and goes back to pending;
// an approved one is final and resubmitting over it is a conflict.
func (s *ReviewService) Submit(userID, lessonID, videoURL string) (*model.BossSubmission, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if !lesson.IsBossBattle {
		return nil, util.ErrNotBossBattle
	}

	existing, err := s.SubmissionRepo.FindByUserAndLesson(userID, lessonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Status == model.SubmissionApproved {
			return nil, util.ErrSubmissionApproved
		}
		existing.VideoURL = videoURL
		existing.Status = model.SubmissionPending
		existing.SubmittedAt = s.now()
		if err := s.SubmissionRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	submission := &model.BossSubmission{
		UserID:      userID,
		LessonID:    lessonID,
		VideoURL:    videoURL,
		Status:      model.SubmissionPending,
		SubmittedAt: s.now(),
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// GradeInput is an instructor's decision on a submission.
type GradeInput struct {
	Decision         model.SubmissionStatus
	FeedbackText     string
	FeedbackVideoURL string
}

// Grade applies the decision and stamps the reviewer. Feedback is stored
// verbatim for both outcomes. On approval the lesson-completion event fires
// through the progression engine inside the same transaction; since the
// engine is idempotent, re-grading an already-decided submission (which this
// system permits) never double-awards XP.
func (s *ReviewService) Grade(reviewerID, submissionID string, input GradeInput) (*model.BossSubmission, error) {
	if input.Decision != model.SubmissionApproved && input.Decision != model.SubmissionRejected {
		return nil, util.ErrInvalidGradeDecision
	}

	var submission model.BossSubmission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, "id = ?", submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrSubmissionNotFound
			}
			return err
		}

		now := s.now()
		submission.Status = input.Decision
		submission.InstructorFeedback = input.FeedbackText
		submission.InstructorVideoURL = input.FeedbackVideoURL
		submission.ReviewedAt = &now
		submission.ReviewedBy = &reviewerID

		if err := tx.Save(&submission).Error; err != nil {
			return err
		}

		if input.Decision == model.SubmissionApproved {
			if _, err := s.Progression.CompleteLessonTx(tx, submission.UserID, submission.LessonID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// PendingSubmissionView decorates a queue entry with the student and lesson
// context an instructor needs to grade without extra lookups.
type PendingSubmissionView struct {
	model.BossSubmission
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
	LessonTitle  string `json:"lessonTitle"`
}

// ListPending returns the review queue, oldest submissions first.
func (s *ReviewService) ListPending() ([]PendingSubmissionView, error) {
	submissions, err := s.SubmissionRepo.ListByStatus(model.SubmissionPending)
	if err != nil {
		return nil, err
	}

	views := make([]PendingSubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := PendingSubmissionView{BossSubmission: sub}

		var user model.User
		if err := s.DB.First(&user, "id = ?", sub.UserID).Error; err == nil {
			view.StudentEmail = user.Email
		}
		var profile model.UserProfile
		if err := s.DB.First(&profile, "user_id = ?", sub.UserID).Error; err == nil {
			view.StudentName = profile.FirstName + " " + profile.LastName
		}
		if lesson, err := s.LessonRepo.FindByID(sub.LessonID); err == nil {
			view.LessonTitle = lesson.Title
		}

		views = append(views, view)
	}
	return views, nil
}
