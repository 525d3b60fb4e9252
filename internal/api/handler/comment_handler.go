package handler

import (
	"pulse-go/internal/api/dto"
	"pulse-go/internal/api/middleware"
	"pulse-go/internal/api/response"
	"pulse-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
	toggleService  *service.ToggleService
}

func NewCommentHandler(commentService *service.CommentService, toggleService *service.ToggleService) *CommentHandler {
	return &CommentHandler{commentService: commentService, toggleService: toggleService}
}

// Update 更新评论
// @Summary 更新评论
// @Description 仅评论作者本人
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "评论ID"
// @Param request body dto.CommentUpdateRequest true "评论内容"
// @Success 200 {object} response.Response{data=dto.CommentInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "id", "无效的评论ID")
	if !ok {
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.commentService.Update(c.Request.Context(), userID, commentID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新评论成功", info)
}

// Delete 删除评论
// @Summary 删除评论
// @Description 仅评论作者本人，评论上的点赞一并删除
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "id", "无效的评论ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.commentService.Delete(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除评论成功", nil)
}

// ToggleLike 点赞/取消点赞评论
// @Summary 切换评论点赞
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path string true "评论ID"
// @Success 200 {object} response.Response{data=dto.ToggleResult} "切换成功"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id}/like [post]
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	commentID, ok := pathID(c, "id", "无效的评论ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	result, err := h.toggleService.Toggle(c.Request.Context(), userID, service.KindCommentLike, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toggleMessage(result, "点赞成功", "取消点赞成功"), result)
}
