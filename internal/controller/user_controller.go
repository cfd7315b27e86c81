package controller

import (
	"errors"

	"quizbank_backend/internal/service"
	"quizbank_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService  *service.UserService
	ScoreService *service.ScoreService
}

func NewUserController(userService *service.UserService, scoreService *service.ScoreService) *UserController {
	return &UserController{
		UserService:  userService,
		ScoreService: scoreService,
	}
}

// GetProfile godoc
// @Summary 获取用户信息
// @Description 获取当前登录用户的个人信息
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateProfileRequest 个人信息更新请求
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateProfile godoc
// @Summary 更新用户信息
// @Description 更新当前用户的姓名/邮箱
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "用户信息"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response "邮箱已被占用"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 获取所有用户
// @Description 用户列表（仅管理员）
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/user/list [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// GetScores godoc
// @Summary 获取用户成绩
// @Description 按提交顺序返回当前用户的全部判题记录，附带题目详情
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ScoreEntry}
// @Router /api/user/scores [get]
func (c *UserController) GetScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scores, err := c.ScoreService.GetUserScores(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}

// GetLeaderboard godoc
// @Summary 获取排行榜
// @Description 按总分降序返回前10名用户，同分按用户ID升序
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/user/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	ranking, err := c.ScoreService.Leaderboard(10)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ranking)
}
