package controller

import (
	"hedgefront_backend/internal/service"
	"hedgefront_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	User *service.UserService
}

func NewUserController(user *service.UserService) *UserController {
	return &UserController{User: user}
}

// @Summary Current user's profile with XP and streak
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.User.GetProfile(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// @Summary Top users by XP
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	entries, err := c.User.Leaderboard(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
