package handler

import (
	"pulse-go/internal/api/dto"
	"pulse-go/internal/api/middleware"
	"pulse-go/internal/api/response"
	"pulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService   *service.UserService
	viewService   *service.ViewService
	toggleService *service.ToggleService
}

func NewUserHandler(userService *service.UserService, viewService *service.ViewService, toggleService *service.ToggleService) *UserHandler {
	return &UserHandler{userService: userService, viewService: viewService, toggleService: toggleService}
}

// Profile 用户主页
// @Summary 用户主页
// @Description 用户名不区分大小写，需要登录
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=dto.ProfileInfo} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未登录"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /profiles/{username} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	username, ok := pathID(c, "username", "无效的用户名")
	if !ok {
		return
	}

	data, err := h.viewService.Profile(c.Request.Context(), middleware.GetViewer(c), username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取用户主页成功", data)
}

// Followers 粉丝列表
// @Summary 获取用户粉丝列表
// @Tags 关注
// @Produce json
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.Page[dto.FollowUser]} "获取成功"
// @Router /users/{id}/followers [get]
func (h *UserHandler) Followers(c *gin.Context) {
	userID, ok := pathID(c, "id", "无效的用户ID")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	data, err := h.viewService.Followers(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取粉丝列表成功", data)
}

// Following 关注列表
// @Summary 获取用户关注列表
// @Tags 关注
// @Produce json
// @Param id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.Page[dto.FollowUser]} "获取成功"
// @Router /users/{id}/following [get]
func (h *UserHandler) Following(c *gin.Context) {
	userID, ok := pathID(c, "id", "无效的用户ID")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	data, err := h.viewService.Following(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取关注列表成功", data)
}

// ToggleFollow 关注/取消关注
// @Summary 切换关注
// @Description 不能关注自己
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response{data=dto.ToggleResult} "切换成功"
// @Failure 400 {object} response.ErrorResponse "不能关注自己"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id}/follow [post]
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	targetID, ok := pathID(c, "id", "无效的用户ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	result, err := h.toggleService.Toggle(c.Request.Context(), userID, service.KindFollow, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toggleMessage(result, "关注成功", "取消关注成功"), result)
}

// UpdateAccount 更新账户信息
// @Summary 更新账户信息
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAccountRequest true "账户信息"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Failure 409 {object} response.ErrorResponse "邮箱已被使用"
// @Router /me/account [patch]
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.UpdateAccount(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新账户信息成功", info)
}

// UpdateAvatar 更新头像
// @Summary 更新头像
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Router /me/avatar [patch]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "avatar_url", "更新头像成功")
}

// UpdateCover 更新主页背景
// @Summary 更新主页背景图
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param cover_image formData file true "背景图"
// @Success 200 {object} response.Response{data=dto.UserInfo} "更新成功"
// @Router /me/cover [patch]
func (h *UserHandler) UpdateCover(c *gin.Context) {
	h.updateImage(c, "cover_image", "cover_image_url", "更新背景图成功")
}

func (h *UserHandler) updateImage(c *gin.Context, formField, column, message string) {
	image, closer, ok := formImage(c, formField)
	if !ok {
		return
	}
	defer closeQuietly(closer)
	if image == nil {
		response.BadRequest(c, "请上传图片")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.userService.UpdateImage(c.Request.Context(), userID, column, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, info)
}

// WatchHistory 浏览记录
// @Summary 浏览记录
// @Description 最近浏览在前
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.PostSummary} "获取成功"
// @Router /me/history [get]
func (h *UserHandler) WatchHistory(c *gin.Context) {
	data, err := h.viewService.WatchHistory(c.Request.Context(), middleware.GetViewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取浏览记录成功", data)
}

// SavedPosts 收藏的帖子
// @Summary 收藏的帖子
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]dto.PostSummary} "获取成功"
// @Router /me/saved [get]
func (h *UserHandler) SavedPosts(c *gin.Context) {
	data, err := h.viewService.SavedPosts(c.Request.Context(), middleware.GetViewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取收藏成功", data)
}

// LikedPosts 点赞过的帖子
// @Summary 点赞过的帖子
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.Page[dto.PostSummary]} "获取成功"
// @Router /me/likes/posts [get]
func (h *UserHandler) LikedPosts(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	data, err := h.viewService.LikedPosts(c.Request.Context(), middleware.GetViewer(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取点赞帖子成功", data)
}

// LikedComments 点赞过的评论
// @Summary 点赞过的评论
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.Page[dto.LikedComment]} "获取成功"
// @Router /me/likes/comments [get]
func (h *UserHandler) LikedComments(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	data, err := h.viewService.LikedComments(c.Request.Context(), middleware.GetViewer(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取点赞评论成功", data)
}
