package handler

import (
	"pulse-go/internal/api/dto"
	"pulse-go/internal/api/middleware"
	"pulse-go/internal/api/response"
	"pulse-go/internal/service"
	"pulse-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService    *service.PostService
	viewService    *service.ViewService
	commentService *service.CommentService
	toggleService  *service.ToggleService
}

func NewPostHandler(postService *service.PostService, viewService *service.ViewService, commentService *service.CommentService, toggleService *service.ToggleService) *PostHandler {
	return &PostHandler{
		postService:    postService,
		viewService:    viewService,
		commentService: commentService,
		toggleService:  toggleService,
	}
}

// Feed 帖子流
// @Summary 帖子流
// @Description 已发布帖子分页列表，支持正文检索、作者过滤与排序（公开）
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param query query string false "检索词"
// @Param userId query string false "作者ID"
// @Param sortBy query string false "排序字段 createdAt|updatedAt|views"
// @Param sortType query string false "排序方向 asc|desc"
// @Success 200 {object} response.Response{data=service.Page[dto.PostSummary]} "获取成功"
// @Failure 400 {object} response.ErrorResponse "参数无效"
// @Router /posts [get]
func (h *PostHandler) Feed(c *gin.Context) {
	var q dto.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.viewService.Feed(c.Request.Context(), service.FeedQuery{
		Query:    q.Query,
		OwnerID:  q.UserID,
		SortBy:   q.SortBy,
		SortType: q.SortType,
		Page:     service.NewPageRequest(q.Page, q.Limit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取帖子流成功", data)
}

// Detail 帖子详情
// @Summary 帖子详情
// @Description 游客只能查看已发布帖子；登录用户查看后计入浏览量与浏览记录
// @Tags 帖子
// @Produce json
// @Param id path string true "帖子ID"
// @Param guest query bool false "以游客身份查看"
// @Success 200 {object} response.Response{data=dto.PostDetail} "获取成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id} [get]
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}
	viewer := middleware.GetViewer(c)

	detail, err := h.viewService.PostDetail(c.Request.Context(), viewer, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.postService.RecordView(c.Request.Context(), viewer, postID); err != nil {
		logger.Warn("Record view failed", zap.String("post_id", postID), zap.Error(err))
	}

	response.OK(c, "获取帖子详情成功", detail)
}

// Comments 帖子评论
// @Summary 帖子评论列表
// @Description 按时间倒序分页
// @Tags 帖子
// @Produce json
// @Param id path string true "帖子ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=service.Page[dto.CommentView]} "获取成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id}/comments [get]
func (h *PostHandler) Comments(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}

	data, err := h.viewService.PostComments(c.Request.Context(), middleware.GetViewer(c), postID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取评论成功", data)
}

// Discovery 随机推荐
// @Summary 随机推荐帖子
// @Description 随机返回若干已发布帖子，不含当前帖子
// @Tags 帖子
// @Produce json
// @Param id path string true "当前帖子ID"
// @Success 200 {object} response.Response{data=[]dto.PostSummary} "获取成功"
// @Router /posts/{id}/next [get]
func (h *PostHandler) Discovery(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	data, err := h.viewService.Discovery(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "获取推荐成功", data)
}

// Publish 发帖
// @Summary 发布帖子
// @Description multipart 表单，图片字段 image 可选
// @Tags 帖子
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param content formData string true "正文"
// @Param is_published formData bool false "是否公开" default(true)
// @Param image formData file false "图片"
// @Success 201 {object} response.Response{data=dto.PostInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /posts [post]
func (h *PostHandler) Publish(c *gin.Context) {
	var req dto.PostCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	image, closer, ok := formImage(c, "image")
	if !ok {
		return
	}
	defer closeQuietly(closer)

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.postService.Publish(c.Request.Context(), userID, req.Content, req.IsPublished, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "发布成功", info)
}

// Update 更新帖子
// @Summary 更新帖子
// @Description 仅作者本人；可更新正文或替换图片
// @Tags 帖子
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Param content formData string false "正文"
// @Param image formData file false "新图片"
// @Success 200 {object} response.Response{data=dto.PostInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id} [patch]
func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	var req dto.PostUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	image, closer, ok := formImage(c, "image")
	if !ok {
		return
	}
	defer closeQuietly(closer)

	userID, _ := middleware.GetCurrentUserID(c)
	info, err := h.postService.Update(c.Request.Context(), userID, postID, req.Content, image)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "更新帖子成功", info)
}

// TogglePublish 切换公开状态
// @Summary 切换帖子公开状态
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=dto.PublishStatus} "切换成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Router /posts/{id}/publish [patch]
func (h *PostHandler) TogglePublish(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	status, err := h.postService.TogglePublish(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "切换公开状态成功", status)
}

// Delete 删除帖子
// @Summary 删除帖子
// @Description 仅作者本人；同时清理点赞、评论与图片，清理失败时返回失败分支
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 500 {object} response.ErrorResponse "关联数据清理失败"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	if err := h.postService.Delete(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "删除帖子成功", nil)
}

// ToggleLike 点赞/取消点赞帖子
// @Summary 切换帖子点赞
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=dto.ToggleResult} "切换成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)
	result, err := h.toggleService.Toggle(c.Request.Context(), userID, service.KindPostLike, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toggleMessage(result, "点赞成功", "取消点赞成功"), result)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "发表成功"
// @Failure 404 {object} response.ErrorResponse "帖子不存在"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.commentService.Add(c.Request.Context(), middleware.GetViewer(c), postID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "评论成功", info)
}

// Save 收藏帖子
// @Summary 收藏帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=[]string} "收藏成功，返回收藏的帖子ID"
// @Router /posts/{id}/save [post]
func (h *PostHandler) Save(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	saved, err := h.postService.Save(c.Request.Context(), middleware.GetViewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "收藏成功", saved)
}

// Unsave 取消收藏
// @Summary 取消收藏帖子
// @Tags 帖子
// @Produce json
// @Security BearerAuth
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=[]string} "取消成功，返回收藏的帖子ID"
// @Router /posts/{id}/save [delete]
func (h *PostHandler) Unsave(c *gin.Context) {
	postID, ok := pathID(c, "id", "无效的帖子ID")
	if !ok {
		return
	}

	saved, err := h.postService.Unsave(c.Request.Context(), middleware.GetViewer(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "取消收藏成功", saved)
}

func toggleMessage(result *dto.ToggleResult, added, removed string) string {
	if result.Active {
		return added
	}
	return removed
}
