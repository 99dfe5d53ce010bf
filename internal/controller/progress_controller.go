package controller

import (
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"
	"hedgefront_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progression *service.ProgressionService
}

func NewProgressController(progression *service.ProgressionService) *ProgressController {
	return &ProgressController{Progression: progression}
}

// @Summary Mark a lesson completed and collect XP
// @Description Idempotent: completing an already-completed lesson reports current totals with zero gain.
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/lessons/{id}/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Progression.CompleteLesson(user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if result.XPGained > 0 {
		monitoring.LessonCompletions.Inc()
		monitoring.XPAwarded.Add(float64(result.XPGained))
	}
	util.Success(ctx, result)
}
