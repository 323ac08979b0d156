package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube-api/internal/auth"
	"github.com/vidtube/vidtube-api/internal/metrics"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// Handlers bundles the handler set mounted by NewRouter.
type Handlers struct {
	Users         *UserHandler
	Videos        *VideoHandler
	Comments      *CommentHandler
	Tweets        *TweetHandler
	Likes         *LikeHandler
	Subscriptions *SubscriptionHandler
	Playlists     *PlaylistHandler
	Dashboard     *DashboardHandler
	Health        *HealthHandler
}

// NewRouter builds the gin engine with all routes mounted under /api/v1.
func NewRouter(h Handlers, tokens *auth.TokenManager, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", m.Handler())
	}

	router.GET("/health/live", h.Health.LivenessProbe)
	router.GET("/health/ready", h.Health.ReadinessProbe)

	api := router.Group("/api/v1")
	authed := middleware.RequireAuth(tokens)

	users := api.Group("/users")
	{
		users.POST("/register", h.Users.Register)
		users.POST("/login", h.Users.Login)
		users.POST("/logout", authed, h.Users.Logout)
		users.GET("/me", authed, h.Users.CurrentUser)
		users.GET("/history", authed, h.Dashboard.WatchHistory)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", h.Videos.List)
		videos.POST("", authed, h.Videos.Publish)
		videos.GET("/:videoId", authed, h.Videos.Get)
		videos.PATCH("/:videoId", authed, h.Videos.Update)
		videos.DELETE("/:videoId", authed, h.Videos.Delete)
		videos.PATCH("/toggle/publish/:videoId", authed, h.Videos.TogglePublish)

		videos.GET("/:videoId/comments", h.Comments.ListByVideo)
		videos.POST("/:videoId/comments", authed, h.Comments.Create)
	}

	comments := api.Group("/comments")
	{
		comments.PATCH("/:commentId", authed, h.Comments.Update)
		comments.DELETE("/:commentId", authed, h.Comments.Delete)
	}

	tweets := api.Group("/tweets")
	{
		tweets.GET("", h.Tweets.Feed)
		tweets.POST("", authed, h.Tweets.Create)
		tweets.GET("/user/:userId", authed, h.Tweets.UserFeed)
		tweets.PATCH("/:tweetId", authed, h.Tweets.Update)
		tweets.DELETE("/:tweetId", authed, h.Tweets.Delete)
	}

	likes := api.Group("/likes", authed)
	{
		likes.POST("/toggle/video/:videoId", h.Likes.ToggleVideo)
		likes.POST("/toggle/comment/:commentId", h.Likes.ToggleComment)
		likes.POST("/toggle/tweet/:tweetId", h.Likes.ToggleTweet)
		likes.GET("/videos", h.Likes.ListLikedVideos)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.GET("/toggle/:channelId", authed, h.Subscriptions.Toggle)
		subscriptions.GET("/channel/:channelId/subscribers", h.Subscriptions.ListSubscribers)
		subscriptions.GET("/user/:subscriberId", h.Subscriptions.ListSubscribedChannels)
	}

	playlists := api.Group("/playlists")
	{
		playlists.POST("", authed, h.Playlists.Create)
		playlists.GET("/watch-later", authed, h.Playlists.WatchLater)
		playlists.GET("/:playlistId", h.Playlists.Get)
		playlists.GET("/user/:userId", authed, h.Playlists.ListByUser)
		playlists.PATCH("/:playlistId", authed, h.Playlists.Update)
		playlists.DELETE("/:playlistId", authed, h.Playlists.Delete)
		playlists.PATCH("/add/:playlistId/videos/:videoId", authed, h.Playlists.AddVideo)
		playlists.PATCH("/remove/:playlistId/videos/:videoId", authed, h.Playlists.RemoveVideo)
	}

	dashboard := api.Group("/dashboard", authed)
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}

	return router
}
