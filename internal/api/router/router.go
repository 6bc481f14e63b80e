package router

import (
	"viewtube/internal/api/handler"
	"viewtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes.
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	playlistHandler *handler.PlaylistHandler,
	tweetHandler *handler.TweetHandler,
	dashboardHandler *handler.DashboardHandler,
	searchHandler *handler.SearchHandler,
) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.POST("/change-password", authHandler.ChangePassword)
			authRequired.GET("/me", authHandler.GetCurrentUser)
		}
	}

	users := v1.Group("/users")
	{
		users.GET("/:id", middleware.AuthOptional(), userHandler.GetChannelProfile)
		users.GET("/:id/videos", middleware.AuthOptional(), videoHandler.ListByChannel)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.PATCH("/me", userHandler.UpdateProfile)
			usersAuth.GET("/me/history", userHandler.GetWatchHistory)
		}
	}

	videos := v1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.GET("/:id", middleware.AuthOptional(), videoHandler.Get)
		videos.GET("/:id/comments", commentHandler.ListByVideo)

		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.POST("/:id/comments", commentHandler.Create)
		}
	}

	comments := v1.Group("/comments", middleware.AuthRequired())
	{
		comments.PATCH("/:id", commentHandler.Update)
		comments.DELETE("/:id", commentHandler.Delete)
	}

	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/toggle/video/:id", likeHandler.ToggleVideoLike)
		likes.POST("/toggle/comment/:id", likeHandler.ToggleCommentLike)
		likes.POST("/toggle/tweet/:id", likeHandler.ToggleTweetLike)
		likes.GET("/video/:id", likeHandler.GetVideoLikeCount)
		likes.GET("/comment/:id", likeHandler.GetCommentLikeCount)
		likes.GET("/tweet/:id", likeHandler.GetTweetLikeCount)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	subscriptions := v1.Group("/subscriptions")
	{
		subscriptions.GET("/channel/:id/subscribers", subscriptionHandler.ListSubscribers)

		subsAuth := subscriptions.Group("", middleware.AuthRequired())
		{
			subsAuth.POST("/channel/:id", subscriptionHandler.Toggle)
			subsAuth.GET("/me", subscriptionHandler.ListSubscribedChannels)
		}
	}

	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:id", playlistHandler.Get)
		playlists.GET("/user/:id", playlistHandler.ListByUser)

		playlistsAuth := playlists.Group("", middleware.AuthRequired())
		{
			playlistsAuth.POST("", playlistHandler.Create)
			playlistsAuth.PATCH("/:id", playlistHandler.Update)
			playlistsAuth.DELETE("/:id", playlistHandler.Delete)
			playlistsAuth.POST("/:id/videos/:videoId", playlistHandler.AddVideo)
			playlistsAuth.DELETE("/:id/videos/:videoId", playlistHandler.RemoveVideo)
		}
	}

	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:id", tweetHandler.ListByUser)

		tweetsAuth := tweets.Group("", middleware.AuthRequired())
		{
			tweetsAuth.POST("", tweetHandler.Create)
			tweetsAuth.PATCH("/:id", tweetHandler.Update)
			tweetsAuth.DELETE("/:id", tweetHandler.Delete)
		}
	}

	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}

	search := v1.Group("/search")
	{
		search.GET("", searchHandler.Search)
		search.GET("/suggest", searchHandler.Suggest)
	}
}
