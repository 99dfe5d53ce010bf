package controller

import (
	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"
	"hedgefront_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin  *service.AdminService
	Review *service.ReviewService
}

func NewAdminController(admin *service.AdminService, review *service.ReviewService) *AdminController {
	return &AdminController{Admin: admin, Review: review}
}

// @Summary Platform counters for the review dashboard
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.Admin.Stats()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Pending boss-battle submissions, oldest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/submissions [get]
func (c *AdminController) ListPendingSubmissions(ctx *gin.Context) {
	submissions, err := c.Review.ListPending()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

type gradeRequest struct {
	Status           string `json:"status" binding:"required,oneof=approved rejected"`
	FeedbackText     string `json:"feedbackText"`
	FeedbackVideoURL string `json:"feedbackVideoUrl"`
}

// @Summary Grade a submission; approval completes the lesson and pays XP
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "submission id"
// @Param body body gradeRequest true "decision"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/submissions/{id}/grade [post]
func (c *AdminController) GradeSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req gradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Review.Grade(user.UserID, ctx.Param("id"), service.GradeInput{
		Decision:         model.SubmissionStatus(req.Status),
		FeedbackText:     req.FeedbackText,
		FeedbackVideoURL: req.FeedbackVideoURL,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	monitoring.SubmissionsGraded.WithLabelValues(req.Status).Inc()
	util.Success(ctx, submission)
}

// @Summary Create a world
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.WorldInput true "world"
// @Success 201 {object} util.Response
// @Router /api/admin/worlds [post]
func (c *AdminController) CreateWorld(ctx *gin.Context) {
	var input service.WorldInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	world, err := c.Admin.CreateWorld(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, world)
}

// @Summary Update a world
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "world id"
// @Param body body service.WorldInput true "world"
// @Success 200 {object} util.Response
// @Router /api/admin/worlds/{id} [put]
func (c *AdminController) UpdateWorld(ctx *gin.Context) {
	var input service.WorldInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	world, err := c.Admin.UpdateWorld(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, world)
}

// @Summary Add a level to a world
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "world id"
// @Param body body service.LevelInput true "level"
// @Success 201 {object} util.Response
// @Router /api/admin/worlds/{id}/levels [post]
func (c *AdminController) CreateLevel(ctx *gin.Context) {
	var input service.LevelInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.Admin.CreateLevel(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, level)
}

// @Summary Add a lesson to a level
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "level id"
// @Param body body service.LessonInput true "lesson"
// @Success 201 {object} util.Response
// @Router /api/admin/levels/{id}/lessons [post]
func (c *AdminController) CreateLesson(ctx *gin.Context) {
	var input service.LessonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Admin.CreateLesson(ctx.Request.Context(), ctx.Param("id"), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Upload a lesson video; duration is probed when absent
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Param video formData file true "video file"
// @Success 200 {object} util.Response
// @Router /api/admin/lessons/{id}/video [post]
func (c *AdminController) UploadLessonVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file required")
		return
	}

	lesson, err := c.Admin.UploadLessonVideo(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
