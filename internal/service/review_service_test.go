package service

import (
	"testing"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB, now time.Time) *ReviewService {
	progression := NewProgressionService(db).WithClock(fixedClock(now))
	return NewReviewService(
		db,
		repository.NewSubmissionRepository(db),
		repository.NewLessonRepository(db),
		progression,
	).WithClock(fixedClock(now))
}

func TestSubmitCreatesPending(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	user := seedUser(t, db, "dancer@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 150, IsBossBattle: true})

	submission, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/take1.mp4")
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionPending, submission.Status)
	assert.Equal(t, "https://cdn.example.com/take1.mp4", submission.VideoURL)
	assert.Equal(t, now, submission.SubmittedAt.UTC())
}

func TestSubmitRejectsNonBossLesson(t *testing.T) {
	db := newTestDB(t)
	review := newReviewService(db, time.Now())

	user := seedUser(t, db, "eager@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 50})

	_, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/v.mp4")
	assert.ErrorIs(t, err, util.ErrNotBossBattle)
}

func TestResubmitOverwritesRejected(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	user := seedUser(t, db, "retry@example.com")
	instructor := seedUser(t, db, "coach@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 150, IsBossBattle: true})

	first, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/take1.mp4")
	require.NoError(t, err)

	_, err = review.Grade(instructor.ID, first.ID, GradeInput{
		Decision:     model.SubmissionRejected,
		FeedbackText: "watch your frame",
	})
	require.NoError(t, err)

	second, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/take2.mp4")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resubmission reuses the row")
	assert.Equal(t, model.SubmissionPending, second.Status)
	assert.Equal(t, "https://cdn.example.com/take2.mp4", second.VideoURL)

	var count int64
	require.NoError(t, db.Model(&model.BossSubmission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResubmitOverApprovedConflicts(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	user := seedUser(t, db, "done@example.com")
	instructor := seedUser(t, db, "coach2@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 150, IsBossBattle: true})

	submission, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/take1.mp4")
	require.NoError(t, err)
	_, err = review.Grade(instructor.ID, submission.ID, GradeInput{Decision: model.SubmissionApproved})
	require.NoError(t, err)

	_, err = review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/take2.mp4")
	assert.ErrorIs(t, err, util.ErrSubmissionApproved)

	var stored model.BossSubmission
	require.NoError(t, db.First(&stored, "id = ?", submission.ID).Error)
	assert.Equal(t, model.SubmissionApproved, stored.Status)
	assert.Equal(t, "https://cdn.example.com/take1.mp4", stored.VideoURL, "approved row untouched")
}

func TestGradeApprovalCompletesLesson(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	user := seedUser(t, db, "approved@example.com")
	instructor := seedUser(t, db, "coach3@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 150, IsBossBattle: true})

	submission, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/v.mp4")
	require.NoError(t, err)

	graded, err := review.Grade(instructor.ID, submission.ID, GradeInput{
		Decision:         model.SubmissionApproved,
		FeedbackText:     "clean basic, nice timing",
		FeedbackVideoURL: "https://cdn.example.com/feedback.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SubmissionApproved, graded.Status)
	assert.Equal(t, "clean basic, nice timing", graded.InstructorFeedback)
	require.NotNil(t, graded.ReviewedBy)
	assert.Equal(t, instructor.ID, *graded.ReviewedBy)
	require.NotNil(t, graded.ReviewedAt)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, 150, profile.XP, "approval pays the lesson XP")

	var progress model.UserProgress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
}

func TestRegradeNeverDoubleAwards(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	user := seedUser(t, db, "regrade@example.com")
	instructor := seedUser(t, db, "coach4@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{XPValue: 150, IsBossBattle: true})

	submission, err := review.Submit(user.ID, lessons[0].ID, "https://cdn.example.com/v.mp4")
	require.NoError(t, err)

	_, err = review.Grade(instructor.ID, submission.ID, GradeInput{Decision: model.SubmissionApproved})
	require.NoError(t, err)
	_, err = review.Grade(instructor.ID, submission.ID, GradeInput{Decision: model.SubmissionApproved})
	require.NoError(t, err)

	profile := profileOf(t, db, user.ID)
	assert.Equal(t, 150, profile.XP)
}

func TestGradeValidatesDecision(t *testing.T) {
	db := newTestDB(t)
	review := newReviewService(db, time.Now())
	instructor := seedUser(t, db, "coach5@example.com")

	_, err := review.Grade(instructor.ID, "whatever", GradeInput{Decision: "maybe"})
	assert.ErrorIs(t, err, util.ErrInvalidGradeDecision)

	_, err = review.Grade(instructor.ID, "missing", GradeInput{Decision: model.SubmissionApproved})
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestListPendingOldestFirstWithContext(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	review := newReviewService(db, now)

	userA := seedUser(t, db, "first@example.com")
	userB := seedUser(t, db, "second@example.com")
	_, lessons := seedWorld(t, db, 1, true, model.Lesson{Title: "Boss Battle", XPValue: 150, IsBossBattle: true})

	_, err := review.Submit(userA.ID, lessons[0].ID, "https://cdn.example.com/a.mp4")
	require.NoError(t, err)

	review.WithClock(fixedClock(now.Add(time.Hour)))
	_, err = review.Submit(userB.ID, lessons[0].ID, "https://cdn.example.com/b.mp4")
	require.NoError(t, err)

	queue, err := review.ListPending()
	require.NoError(t, err)
	require.Len(t, queue, 2)

	assert.Equal(t, userA.ID, queue[0].UserID)
	assert.Equal(t, userB.ID, queue[1].UserID)
	assert.Equal(t, "first@example.com", queue[0].StudentEmail)
	assert.Equal(t, "Test Dancer", queue[0].StudentName)
	assert.Equal(t, "Boss Battle", queue[0].LessonTitle)
}
