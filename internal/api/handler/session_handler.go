package handler

import (
	"pulse-go/internal/api/dto"
	"pulse-go/internal/api/middleware"
	"pulse-go/internal/api/response"
	"pulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户账号，用户名与邮箱不区分大小写
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=dto.UserInfo} "注册成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 409 {object} response.ErrorResponse "用户名或邮箱已被注册"
// @Router /auth/register [post]
func (h *SessionHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.sessionService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "注册成功", info)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名或邮箱登录，返回访问令牌与刷新令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} response.Response{data=dto.TokenData} "登录成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 401 {object} response.ErrorResponse "用户名或密码错误"
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.sessionService.Login(c.Request.Context(), req.Identifier(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "登录成功", data)
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Description 用当前刷新令牌换取新的令牌对，旧刷新令牌随即失效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} response.Response{data=dto.TokenData} "刷新成功"
// @Failure 401 {object} response.ErrorResponse "刷新令牌已失效"
// @Router /auth/refresh [post]
func (h *SessionHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.sessionService.Renew(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "刷新成功", data)
}

// Logout 退出登录
// @Summary 退出登录
// @Description 吊销当前用户的刷新令牌
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "退出成功"
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.sessionService.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "退出成功", nil)
}

// Me 当前用户
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未认证"
// @Router /auth/me [get]
func (h *SessionHandler) Me(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.sessionService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "获取成功", info)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 校验原密码后修改，已签发的刷新令牌同时失效
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "新旧密码"
// @Success 200 {object} response.Response "修改成功"
// @Failure 400 {object} response.ErrorResponse "原密码错误"
// @Router /auth/change-password [post]
func (h *SessionHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.sessionService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "密码修改成功，请重新登录", nil)
}
