package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/photoshare-dev/photoshare/internal/auth"
	"github.com/photoshare-dev/photoshare/internal/config"
	"github.com/photoshare-dev/photoshare/internal/handlers"
	"github.com/photoshare-dev/photoshare/internal/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handler, tokens *auth.TokenManager, users middleware.UserLookup, limiter *middleware.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.MaxMultipartMemory = cfg.MaxUploadMB << 20

	if cfg.StorageDriver == "local" {
		r.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	requireAuth := middleware.AuthMiddleware(tokens, users)

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", limiter.Middleware(), h.CreateUser)
			authGroup.POST("/login", limiter.Middleware(), h.LoginUser)
			authGroup.POST("/logout", h.LogoutUser)
			authGroup.GET("/me", requireAuth, h.Me)
			authGroup.PATCH("/me", requireAuth, h.UpdateMe)
			authGroup.DELETE("/me", requireAuth, h.DeleteMe)
			authGroup.PUT("/me/avatar", requireAuth, h.UploadAvatar)
			authGroup.DELETE("/me/avatar", requireAuth, h.DeleteAvatar)
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("/:user_id", h.GetUserProfile)
		}

		admin := api.Group("/admin", requireAuth, middleware.RequireStaff())
		{
			admin.PATCH("/users/:user_id", middleware.RequirePermission("photoshare.change_user"), h.AdminUpdateUser)
			admin.DELETE("/users/:user_id", middleware.RequirePermission("photoshare.delete_user"), h.AdminDeleteUser)
		}

		posts := api.Group("/posts", requireAuth)
		{
			posts.POST("", h.CreatePost)
			posts.GET("", h.ListPosts)
			posts.GET("/:post_id", h.GetPost)
			posts.PATCH("/:post_id", h.UpdatePost)
			posts.DELETE("/:post_id", h.DeletePost)

			posts.POST("/:post_id/likes", h.LikePost)
			posts.DELETE("/:post_id/likes", h.UnlikePost)
			posts.GET("/:post_id/comments", h.ListComments)
			posts.POST("/:post_id/comments", h.CreateComment)
		}

		api.DELETE("/comments/:comment_id", requireAuth, h.DeleteComment)

		collections := api.Group("/collections", requireAuth)
		{
			collections.POST("", h.CreateCollection)
			collections.GET("", h.ListCollections)
			collections.GET("/:collection_id", h.GetCollection)
			collections.PATCH("/:collection_id", h.RenameCollection)
			collections.DELETE("/:collection_id", h.DeleteCollection)
			collections.POST("/:collection_id/posts", h.AddPostToCollection)
			collections.DELETE("/:collection_id/posts/:post_id", h.RemovePostFromCollection)
		}

		galleries := api.Group("/galleries", requireAuth)
		{
			galleries.POST("", h.CreateGallery)
			galleries.GET("", h.ListGalleries)
			galleries.GET("/:gallery_id", h.GetGallery)
			galleries.DELETE("/:gallery_id", h.DeleteGallery)
			galleries.POST("/:gallery_id/posts", h.AddPostToGallery)
			galleries.DELETE("/:gallery_id/posts/:post_id", h.RemovePostFromGallery)
			galleries.POST("/:gallery_id/visits", h.VisitGallery)
			galleries.GET("/:gallery_id/visits", h.ListVisits)
		}
	}

	return r
}
