package controller

import (
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Review  *service.ReviewService
	Storage *service.StorageService
}

func NewSubmissionController(review *service.ReviewService, storage *service.StorageService) *SubmissionController {
	return &SubmissionController{Review: review, Storage: storage}
}

type uploadURLRequest struct {
	Filename string `json:"filename" binding:"required"`
	FileType string `json:"fileType"`
}

type uploadURLResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

// @Summary Presigned PUT URL for a boss-battle video
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body uploadURLRequest true "upload target"
// @Success 200 {object} util.Response
// @Router /api/submissions/upload-url [post]
func (c *SubmissionController) UploadURL(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req uploadURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, key, err := c.Storage.SubmissionUploadURL(ctx.Request.Context(), user.UserID, req.Filename)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, uploadURLResponse{URL: url, ObjectKey: key})
}

type submitRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
	VideoURL string `json:"videoUrl" binding:"required"`
}

// @Summary Submit (or resubmit) a boss battle video
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body submitRequest true "submission"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.Review.Submit(user.UserID, req.LessonID, req.VideoURL)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, submission)
}
