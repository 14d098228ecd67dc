package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/handlers"
	"github.com/panditashushukl/ESamaaj/internal/middleware"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

// Handlers bundles every resource handler for registration.
type Handlers struct {
	Users         *handlers.UserHandler
	Videos        *handlers.VideoHandler
	Comments      *handlers.CommentHandler
	Tweets        *handlers.TweetHandler
	Subscriptions *handlers.SubscriptionHandler
	Playlists     *handlers.PlaylistHandler
	Likes         *handlers.LikeHandler
	Dashboard     *handlers.DashboardHandler
}

// Register mounts the full API surface under /api/v1.
func Register(app *fiber.App, h Handlers, jwtm *utils.JWTManager) {
	api := app.Group("/api/v1")

	api.Get("/healthcheck", handlers.Healthcheck)

	users := api.Group("/users")
	users.Post("/register", h.Users.Register)
	users.Post("/login", h.Users.Login)
	users.Post("/refresh-token", h.Users.Refresh)
	users.Post("/logout", middleware.RequireAuth(jwtm), h.Users.Logout)
	users.Get("/me", middleware.RequireAuth(jwtm), h.Users.Me)

	videos := api.Group("/videos")
	videos.Get("/", middleware.OptionalAuth(jwtm), h.Videos.List)
	videos.Post("/", middleware.RequireAuth(jwtm), h.Videos.Publish)
	videos.Get("/:videoId", h.Videos.Get)
	videos.Patch("/:videoId", middleware.RequireAuth(jwtm), h.Videos.Update)
	videos.Delete("/:videoId", middleware.RequireAuth(jwtm), h.Videos.Delete)
	videos.Patch("/:videoId/toggle-publish", middleware.RequireAuth(jwtm), h.Videos.TogglePublish)

	comments := api.Group("/comments")
	comments.Get("/:videoId", h.Comments.List)
	comments.Post("/:videoId", middleware.RequireAuth(jwtm), h.Comments.Add)
	comments.Patch("/c/:commentId", middleware.RequireAuth(jwtm), h.Comments.Update)
	comments.Delete("/c/:commentId", middleware.RequireAuth(jwtm), h.Comments.Delete)

	tweets := api.Group("/tweets")
	tweets.Post("/", middleware.RequireAuth(jwtm), h.Tweets.Create)
	tweets.Get("/user/:username", h.Tweets.ListByUser)
	tweets.Patch("/:tweetId", middleware.RequireAuth(jwtm), h.Tweets.Update)
	tweets.Delete("/:tweetId", middleware.RequireAuth(jwtm), h.Tweets.Delete)

	subs := api.Group("/subscriptions")
	subs.Post("/channels/:channelUsername/subscribers", middleware.RequireAuth(jwtm), h.Subscriptions.Toggle)
	subs.Get("/channels/:channelUsername/subscribers", h.Subscriptions.Subscribers)
	subs.Get("/users/:username/subscriptions", h.Subscriptions.Subscriptions)

	playlists := api.Group("/playlists")
	playlists.Post("/", middleware.RequireAuth(jwtm), h.Playlists.Create)
	playlists.Get("/user/:username", h.Playlists.ListByUser)
	playlists.Get("/:playlistId", h.Playlists.Get)
	playlists.Patch("/:playlistId", middleware.RequireAuth(jwtm), h.Playlists.Update)
	playlists.Delete("/:playlistId", middleware.RequireAuth(jwtm), h.Playlists.Delete)
	playlists.Patch("/:playlistId/videos/:videoId", middleware.RequireAuth(jwtm), h.Playlists.AddVideo)
	playlists.Delete("/:playlistId/videos/:videoId", middleware.RequireAuth(jwtm), h.Playlists.RemoveVideo)

	likes := api.Group("/likes", middleware.RequireAuth(jwtm))
	likes.Post("/toggle/v/:videoId", h.Likes.ToggleVideo)
	likes.Post("/toggle/c/:commentId", h.Likes.ToggleComment)
	likes.Post("/toggle/t/:tweetId", h.Likes.ToggleTweet)
	likes.Get("/videos", h.Likes.LikedVideos)

	dashboard := api.Group("/dashboard")
	dashboard.Get("/:channelUsername/stats", h.Dashboard.Stats)
	dashboard.Get("/:channelUsername/videos", h.Dashboard.Videos)
}
