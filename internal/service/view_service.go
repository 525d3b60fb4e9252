package service

import (
	"context"
	"strings"
	"time"

	"pulse-go/internal/api/dto"
	"pulse-go/internal/apperr"
	"pulse-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = apperr.NotFound("帖子不存在")
	ErrUserNotFound    = apperr.NotFound("用户不存在")
	ErrCommentNotFound = apperr.NotFound("评论不存在")
	ErrLoginRequired   = apperr.Unauthenticated("请先登录")
	ErrInvalidSort     = apperr.Invalid("不支持的排序字段")
)

var postColumns = []string{"id", "owner_id", "content", "image_url", "views", "is_published", "created_at", "updated_at"}

var briefColumns = []string{"username", "full_name", "avatar_url"}

// feedSortColumns 帖子流允许的排序字段
var feedSortColumns = map[string]string{
	"createdAt": "posts.created_at",
	"views":     "posts.views",
	"updatedAt": "posts.updated_at",
}

// ViewService 按请求方身份组装只读视图
type ViewService struct {
	db            *gorm.DB
	posts         *repository.PostRepository
	users         *repository.UserRepository
	likes         *repository.LikeRepository
	discoverySize int
}

func NewViewService(db *gorm.DB, posts *repository.PostRepository, users *repository.UserRepository, likes *repository.LikeRepository, discoverySize int) *ViewService {
	if discoverySize <= 0 {
		discoverySize = 10
	}
	return &ViewService{db: db, posts: posts, users: users, likes: likes, discoverySize: discoverySize}
}

func variant(v Viewer) string {
	if v.IsGuest() {
		return "guest"
	}
	return "member"
}

func observeView(view string, v Viewer, start time.Time) {
	viewDuration.WithLabelValues(view, variant(v)).Observe(time.Since(start).Seconds())
}

// ownerJoin 以 owner_ 前缀投影作者简要信息
func ownerJoin(localKey string) repository.Stage {
	return repository.Join(repository.JoinSpec{
		Table:    "users",
		Alias:    "owner_user",
		LocalKey: localKey,
		Fields:   briefColumns,
		Prefix:   "owner_",
	})
}

func likesCount(foreignField, localField string) repository.Stage {
	return repository.Lookup(repository.LookupSpec{
		From:         "likes",
		ForeignField: foreignField,
		LocalField:   localField,
		As:           "likes_count",
		Acc:          repository.Count(),
	})
}

// visibleTo 已发布，或请求方是作者
func visibleTo(v Viewer, table string) repository.Stage {
	if v.IsGuest() {
		return repository.Match(table+".is_published = ?", true)
	}
	return repository.Match("("+table+".is_published = ? OR "+table+".owner_id = ?)", true, v.ID)
}

// postDetailPipeline 游客与登录用户是两条不同的管道，游客管道不含成员关系子查询
func (s *ViewService) postDetailPipeline(v Viewer, postID string) *repository.Pipeline {
	stages := []repository.Stage{
		repository.Match("posts.id = ?", postID),
		visibleTo(v, "posts"),
		repository.Project(postColumns...),
		likesCount("post_id", "posts.id"),
		ownerJoin("posts.owner_id"),
		repository.Lookup(repository.LookupSpec{
			From:         "follows",
			ForeignField: "followed_user_id",
			LocalField:   "owner_user.id",
			As:           "owner_subscribers_count",
			Acc:          repository.Count(),
		}),
	}

	if v.IsGuest() {
		stages = append(stages, repository.AddFields(
			repository.Literal("is_liked", false),
			repository.Literal("owner_is_subscribed", false),
		))
	} else {
		stages = append(stages,
			repository.Lookup(repository.LookupSpec{
				From:         "likes",
				ForeignField: "post_id",
				LocalField:   "posts.id",
				As:           "is_liked",
				Acc:          repository.Has("likes.liked_by_id", v.ID),
			}),
			repository.Lookup(repository.LookupSpec{
				From:         "follows",
				ForeignField: "followed_user_id",
				LocalField:   "owner_user.id",
				As:           "owner_is_subscribed",
				Acc:          repository.Has("follows.follower_id", v.ID),
			}),
		)
	}

	stages = append(stages, repository.Limit(1))
	return repository.NewPipeline(s.db, "posts", stages...)
}

// PostDetail 帖子详情
func (s *ViewService) PostDetail(ctx context.Context, v Viewer, postID string) (*dto.PostDetail, error) {
	defer observeView("post_detail", v, time.Now())

	var rows []postDetailRow
	if err := s.postDetailPipeline(v, postID).Run(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrPostNotFound
	}
	return toPostDetail(&rows[0]), nil
}

// ensureVisible 帖子对请求方可见，否则 NotFound
func (s *ViewService) ensureVisible(ctx context.Context, v Viewer, postID string) error {
	total, err := repository.NewPipeline(s.db, "posts",
		repository.Match("posts.id = ?", postID),
		visibleTo(v, "posts"),
	).Count(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrPostNotFound
	}
	return nil
}

// PostComments 帖子评论列表，按时间倒序
func (s *ViewService) PostComments(ctx context.Context, v Viewer, postID string, req PageRequest) (*Page[dto.CommentView], error) {
	defer observeView("post_comments", v, time.Now())

	if err := s.ensureVisible(ctx, v, postID); err != nil {
		return nil, err
	}

	stages := []repository.Stage{
		repository.Match("comments.post_id = ?", postID),
		repository.Project("id", "post_id", "owner_id", "content", "created_at", "updated_at"),
		likesCount("comment_id", "comments.id"),
		ownerJoin("comments.owner_id"),
	}
	if v.IsGuest() {
		stages = append(stages, repository.AddFields(repository.Literal("is_liked", false)))
	} else {
		stages = append(stages, repository.Lookup(repository.LookupSpec{
			From:         "likes",
			ForeignField: "comment_id",
			LocalField:   "comments.id",
			As:           "is_liked",
			Acc:          repository.Has("likes.liked_by_id", v.ID),
		}))
	}

	p := repository.NewPipeline(s.db, "comments", stages...)
	return Paginate(ctx, p, []repository.SortKey{repository.Desc("comments.created_at")}, "comments.id", req, toCommentView)
}

// FeedQuery 帖子流参数
type FeedQuery struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortType string
	Page     PageRequest
}

// FeedSort 解析排序参数，默认 createdAt 倒序
func FeedSort(sortBy, sortType string) ([]repository.SortKey, error) {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := feedSortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSort
	}
	switch strings.ToLower(sortType) {
	case "asc", "1":
		return []repository.SortKey{repository.Asc(column)}, nil
	case "", "desc", "-1":
		return []repository.SortKey{repository.Desc(column)}, nil
	default:
		return nil, apperr.Invalid("排序方向只能是 asc 或 desc")
	}
}

// Feed 已发布帖子流，可按正文检索与作者过滤
func (s *ViewService) Feed(ctx context.Context, q FeedQuery) (*Page[dto.PostSummary], error) {
	defer observeView("feed", Guest(), time.Now())

	sort, err := FeedSort(q.SortBy, q.SortType)
	if err != nil {
		return nil, err
	}

	var stages []repository.Stage
	if strings.TrimSpace(q.Query) != "" {
		stages = append(stages, s.posts.SearchStage(ctx, q.Query))
	}
	if q.OwnerID != "" {
		stages = append(stages, repository.Match("posts.owner_id = ?", q.OwnerID))
	}
	stages = append(stages,
		repository.Match("posts.is_published = ?", true),
		repository.Project(postColumns...),
		likesCount("post_id", "posts.id"),
		ownerJoin("posts.owner_id"),
	)

	p := repository.NewPipeline(s.db, "posts", stages...)
	return Paginate(ctx, p, sort, "posts.id", q.Page, toPostSummary)
}

// Profile 用户主页，用户名不区分大小写
func (s *ViewService) Profile(ctx context.Context, v Viewer, username string) (*dto.ProfileInfo, error) {
	defer observeView("profile", v, time.Now())

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.Invalid("用户名不能为空")
	}

	stages := []repository.Stage{
		repository.Match("LOWER(users.username) = ?", username),
		repository.Project("id", "username", "full_name", "email", "avatar_url", "cover_image_url"),
		repository.Lookup(repository.LookupSpec{
			From:         "follows",
			ForeignField: "followed_user_id",
			LocalField:   "users.id",
			As:           "subscribers_count",
			Acc:          repository.Count(),
		}),
		repository.Lookup(repository.LookupSpec{
			From:         "follows",
			ForeignField: "follower_id",
			LocalField:   "users.id",
			As:           "subscribed_to_count",
			Acc:          repository.Count(),
		}),
	}
	if v.IsGuest() {
		stages = append(stages, repository.AddFields(repository.Literal("is_subscribed", false)))
	} else {
		stages = append(stages, repository.Lookup(repository.LookupSpec{
			From:         "follows",
			ForeignField: "followed_user_id",
			LocalField:   "users.id",
			As:           "is_subscribed",
			Acc:          repository.Has("follows.follower_id", v.ID),
		}))
	}
	stages = append(stages, repository.Limit(1))

	var rows []profileRow
	if err := repository.NewPipeline(s.db, "users", stages...).Run(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return toProfile(&rows[0]), nil
}

// postsInOrder 按给定 ID 顺序取出请求方可见的帖子，已删除的跳过
func (s *ViewService) postsInOrder(ctx context.Context, v Viewer, ids []string, withLikes bool) ([]dto.PostSummary, error) {
	if len(ids) == 0 {
		return []dto.PostSummary{}, nil
	}

	stages := []repository.Stage{
		repository.Match("posts.id IN ?", ids),
		visibleTo(v, "posts"),
		repository.Project(postColumns...),
		ownerJoin("posts.owner_id"),
	}
	if withLikes {
		stages = append(stages, likesCount("post_id", "posts.id"))
	}

	var rows []postRow
	if err := repository.NewPipeline(s.db, "posts", stages...).Run(ctx, &rows); err != nil {
		return nil, err
	}

	byID := make(map[string]*postRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	items := make([]dto.PostSummary, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			items = append(items, toPostSummary(r))
		}
	}
	return items, nil
}

// WatchHistory 浏览记录，最近在前
func (s *ViewService) WatchHistory(ctx context.Context, v Viewer) ([]dto.PostSummary, error) {
	defer observeView("watch_history", v, time.Now())

	if v.IsGuest() {
		return nil, ErrLoginRequired
	}
	user, err := s.users.GetByID(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	return s.postsInOrder(ctx, v, user.WatchHistory, true)
}

// SavedPosts 收藏的帖子，按收藏顺序
func (s *ViewService) SavedPosts(ctx context.Context, v Viewer) ([]dto.PostSummary, error) {
	defer observeView("saved_posts", v, time.Now())

	if v.IsGuest() {
		return nil, ErrLoginRequired
	}
	user, err := s.users.GetByID(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.postsInOrder(ctx, v, user.SavedPostIDs, false)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	counts, err := s.likes.CountByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].LikesCount = counts[items[i].ID]
	}
	return items, nil
}

// Discovery 随机推荐已发布帖子，排除当前帖子
func (s *ViewService) Discovery(ctx context.Context, excludePostID string) ([]dto.PostSummary, error) {
	defer observeView("discovery", Guest(), time.Now())

	exists, err := s.posts.Exists(ctx, excludePostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	var rows []postRow
	err = repository.NewPipeline(s.db, "posts",
		repository.Match("posts.is_published = ? AND posts.id <> ?", true, excludePostID),
		repository.Project(postColumns...),
		likesCount("post_id", "posts.id"),
		ownerJoin("posts.owner_id"),
		repository.Sample(s.discoverySize),
	).Run(ctx, &rows)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PostSummary, 0, len(rows))
	for i := range rows {
		items = append(items, toPostSummary(&rows[i]))
	}
	return items, nil
}

// LikedPosts 请求方点赞过的帖子，按点赞时间倒序
func (s *ViewService) LikedPosts(ctx context.Context, v Viewer, req PageRequest) (*Page[dto.PostSummary], error) {
	defer observeView("liked_posts", v, time.Now())

	if v.IsGuest() {
		return nil, ErrLoginRequired
	}

	p := repository.NewPipeline(s.db, "likes",
		repository.Match("likes.liked_by_id = ? AND likes.post_id IS NOT NULL", v.ID),
		repository.Join(repository.JoinSpec{
			Table:    "posts",
			Alias:    "liked_post",
			LocalKey: "likes.post_id",
			Fields:   postColumns,
			Prefix:   "post_",
		}),
		repository.Match("liked_post.id IS NOT NULL"),
		repository.Match("(liked_post.is_published = ? OR liked_post.owner_id = ?)", true, v.ID),
		likesCount("post_id", "liked_post.id"),
		ownerJoin("liked_post.owner_id"),
	)
	return Paginate(ctx, p, []repository.SortKey{repository.Desc("likes.created_at")}, "likes.id", req, toLikedPost)
}

// LikedComments 请求方点赞过的评论，按点赞时间倒序
func (s *ViewService) LikedComments(ctx context.Context, v Viewer, req PageRequest) (*Page[dto.LikedComment], error) {
	defer observeView("liked_comments", v, time.Now())

	if v.IsGuest() {
		return nil, ErrLoginRequired
	}

	p := repository.NewPipeline(s.db, "likes",
		repository.Match("likes.liked_by_id = ? AND likes.comment_id IS NOT NULL", v.ID),
		repository.Join(repository.JoinSpec{
			Table:    "comments",
			Alias:    "liked_comment",
			LocalKey: "likes.comment_id",
			Fields:   []string{"id", "post_id", "owner_id", "content", "created_at", "updated_at"},
			Prefix:   "comment_",
		}),
		repository.Match("liked_comment.id IS NOT NULL"),
		// 所属帖子对请求方不可见时一并隐藏
		repository.Match(`EXISTS (SELECT 1 FROM posts AS parent_post WHERE parent_post.id = liked_comment.post_id
			AND (parent_post.is_published = ? OR parent_post.owner_id = ?))`, true, v.ID),
		repository.AddFields(repository.Computed("liked_at", "likes.created_at")),
		ownerJoin("liked_comment.owner_id"),
	)
	return Paginate(ctx, p, []repository.SortKey{repository.Desc("likes.created_at")}, "likes.id", req, toLikedComment)
}

// followList 关注边的一侧，matchColumn 为过滤列，otherColumn 为要展示的用户列
func (s *ViewService) followList(ctx context.Context, userID, matchColumn, otherColumn string, req PageRequest) (*Page[dto.FollowUser], error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	p := repository.NewPipeline(s.db, "follows",
		repository.Match("follows."+matchColumn+" = ?", userID),
		repository.Join(repository.JoinSpec{
			Table:    "users",
			Alias:    "edge_user",
			LocalKey: "follows." + otherColumn,
			Fields:   append([]string{"id"}, briefColumns...),
			Prefix:   "user_",
		}),
		repository.Match("edge_user.id IS NOT NULL"),
		repository.AddFields(repository.Computed("followed_at", "follows.created_at")),
	)
	return Paginate(ctx, p, []repository.SortKey{repository.Desc("follows.created_at")}, "follows.id", req, toFollowUser)
}

// Followers 关注该用户的人
func (s *ViewService) Followers(ctx context.Context, userID string, req PageRequest) (*Page[dto.FollowUser], error) {
	defer observeView("followers", Guest(), time.Now())
	return s.followList(ctx, userID, "followed_user_id", "follower_id", req)
}

// Following 该用户关注的人
func (s *ViewService) Following(ctx context.Context, userID string, req PageRequest) (*Page[dto.FollowUser], error) {
	defer observeView("following", Guest(), time.Now())
	return s.followList(ctx, userID, "follower_id", "followed_user_id", req)
}
