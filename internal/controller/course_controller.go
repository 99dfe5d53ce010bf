package controller

import (
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary World map with per-world progress and lock flags
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses/worlds [get]
func (c *CourseController) ListWorlds(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	worlds, err := c.CourseService.ListWorlds(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, worlds)
}

// @Summary Lesson detail with neighbors and threaded comments
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/lessons/{id} [get]
func (c *CourseController) GetLessonDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.CourseService.GetLessonDetail(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type commentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// @Summary Comment on a lesson, optionally as a reply
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Param body body commentRequest true "comment"
// @Success 201 {object} util.Response
// @Router /api/courses/lessons/{id}/comments [post]
func (c *CourseController) AddComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CourseService.AddComment(user.UserID, ctx.Param("id"), req.Content, req.ParentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}
