package router

import (
	"pulse-go/internal/api/handler"
	"pulse-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	verifier middleware.TokenVerifier,
	sessionHandler *handler.SessionHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	userHandler *handler.UserHandler,
) {
	v1 := r.Group("/api/v1")
	authRequired := middleware.AuthRequired(verifier)
	authOptional := middleware.AuthOptional(verifier)

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", sessionHandler.Register)
		auth.POST("/login", sessionHandler.Login)
		auth.POST("/refresh", sessionHandler.Refresh)

		authed := auth.Group("", authRequired)
		{
			authed.POST("/logout", sessionHandler.Logout)
			authed.GET("/me", sessionHandler.Me)
			authed.POST("/change-password", sessionHandler.ChangePassword)
		}
	}

	// --- 帖子模块 ---
	posts := v1.Group("/posts")
	{
		// 游客可访问
		public := posts.Group("", authOptional)
		{
			public.GET("", postHandler.Feed)
			public.GET("/:id", postHandler.Detail)
			public.GET("/:id/comments", postHandler.Comments)
			public.GET("/:id/next", postHandler.Discovery)
		}

		authed := posts.Group("", authRequired)
		{
			authed.POST("", postHandler.Publish)
			authed.PATCH("/:id", postHandler.Update)
			authed.DELETE("/:id", postHandler.Delete)
			authed.PATCH("/:id/publish", postHandler.TogglePublish)
			authed.POST("/:id/like", postHandler.ToggleLike)
			authed.POST("/:id/comments", postHandler.AddComment)
			authed.POST("/:id/save", postHandler.Save)
			authed.DELETE("/:id/save", postHandler.Unsave)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", authRequired)
	{
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
		comments.POST("/:id/like", commentHandler.ToggleLike)
	}

	// --- 用户与关注 ---
	v1.GET("/profiles/:username", authRequired, userHandler.Profile)

	users := v1.Group("/users")
	{
		users.GET("/:id/followers", userHandler.Followers)
		users.GET("/:id/following", userHandler.Following)
		users.POST("/:id/follow", authRequired, userHandler.ToggleFollow)
	}

	me := v1.Group("/me", authRequired)
	{
		me.PATCH("/account", userHandler.UpdateAccount)
		me.PATCH("/avatar", userHandler.UpdateAvatar)
		me.PATCH("/cover", userHandler.UpdateCover)
		me.GET("/history", userHandler.WatchHistory)
		me.GET("/saved", userHandler.SavedPosts)
		me.GET("/likes/posts", userHandler.LikedPosts)
		me.GET("/likes/comments", userHandler.LikedComments)
	}
}
