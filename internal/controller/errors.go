package controller

import (
	"errors"

	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto transport codes: absent entities are
// 404, lock and role failures 403, approved-resubmit 409, and a missing
// profile is a data bug surfaced as 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrWorldNotFound),
		errors.Is(err, util.ErrLevelNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrCommentNotFound),
		errors.Is(err, util.ErrSubscriptionMissing):
		util.NotFound(c, err.Error())
	case errors.Is(err, util.ErrWorldLocked),
		errors.Is(err, util.ErrLessonLocked):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrSubmissionApproved):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrNotBossBattle),
		errors.Is(err, util.ErrInvalidGradeDecision):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(c)
	default:
		util.LogInternalError(c, err)
	}
}
