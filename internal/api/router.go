package api

import (
	"context"  // Health check context
	"net/http" // HTTP status codes

	"review_system/internal/metrics"    // Prometheus handler
	"review_system/internal/middleware" // Request pipeline
	"review_system/internal/permission" // Authorization policies
	"review_system/internal/service"    // Use cases
	"review_system/internal/validation" // Custom binding rules

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps wires the router to the services
type Deps struct {
	Auth           *service.AuthService
	Users          *service.UserService
	Catalog        *service.CatalogService
	Titles         *service.TitleService
	Reviews        *service.ReviewService
	Comments       *service.CommentService
	SignupLimiter  *middleware.RateLimiter     // Optional per-IP signup limit
	TrustedProxies []string                    // Proxies trusted for client IP resolution
	Ping           func(context.Context) error // Optional readiness probe
}

// NewRouter builds the gin engine serving /api/v1
func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}
	r := gin.New()                  // Gin router instance
	r.HandleMethodNotAllowed = true // Answer 405 instead of 404 for known paths
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery())

	r.GET("/metrics", gin.WrapH(metrics.Handler())) // Prometheus scrape endpoint
	r.GET("/healthz", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Authenticate(d.Auth)) // Every API route knows its requester

	// Auth routes
	signup := []gin.HandlerFunc{SignupHandler(d.Auth)}
	if d.SignupLimiter != nil {
		signup = append([]gin.HandlerFunc{d.SignupLimiter.Middleware()}, signup...)
	}
	v1.POST("/auth/signup/", signup...)           // Registration endpoint
	v1.POST("/auth/token/", TokenHandler(d.Auth)) // Token endpoint

	// Catalog routes, readable by anyone and writable by admins
	catalog := v1.Group("", middleware.Authorize(permission.ReadOpenWriteAdminOnly))
	catalog.GET("/categories/", ListCategoriesHandler(d.Catalog))
	catalog.POST("/categories/", CreateCategoryHandler(d.Catalog))
	catalog.DELETE("/categories/:slug/", DeleteCategoryHandler(d.Catalog))
	catalog.GET("/genres/", ListGenresHandler(d.Catalog))
	catalog.POST("/genres/", CreateGenreHandler(d.Catalog))
	catalog.DELETE("/genres/:slug/", DeleteGenreHandler(d.Catalog))
	catalog.GET("/titles/", ListTitlesHandler(d.Titles))
	catalog.POST("/titles/", CreateTitleHandler(d.Titles))
	catalog.GET("/titles/:title_id/", GetTitleHandler(d.Titles))
	catalog.PATCH("/titles/:title_id/", UpdateTitleHandler(d.Titles))
	catalog.DELETE("/titles/:title_id/", DeleteTitleHandler(d.Titles))

	// Review and comment routes, writable by authors and staff
	content := v1.Group("/titles/:title_id/reviews", middleware.Authorize(permission.ReadOpenWriteAuthorOrStaff))
	content.GET("/", ListReviewsHandler(d.Reviews))
	content.POST("/", CreateReviewHandler(d.Reviews))
	content.GET("/:review_id/", GetReviewHandler(d.Reviews))
	content.PATCH("/:review_id/", UpdateReviewHandler(d.Reviews))
	content.DELETE("/:review_id/", DeleteReviewHandler(d.Reviews))
	content.GET("/:review_id/comments/", ListCommentsHandler(d.Comments))
	content.POST("/:review_id/comments/", CreateCommentHandler(d.Comments))
	content.GET("/:review_id/comments/:comment_id/", GetCommentHandler(d.Comments))
	content.PATCH("/:review_id/comments/:comment_id/", UpdateCommentHandler(d.Comments))
	content.DELETE("/:review_id/comments/:comment_id/", DeleteCommentHandler(d.Comments))

	// Own account, any authenticated user
	me := v1.Group("/users/me", middleware.Authorize(permission.Authenticated))
	me.GET("/", MeHandler(d.Users))
	me.PATCH("/", UpdateMeHandler(d.Users))
	me.DELETE("/", methodNotAllowed("GET, PATCH")) // Would otherwise match /users/:username/

	// User administration (protected, admin only)
	users := v1.Group("/users", middleware.Authorize(permission.AdminOnly))
	users.GET("/", ListUsersHandler(d.Users))
	users.POST("/", CreateUserHandler(d.Users))
	users.GET("/:username/", GetUserHandler(d.Users))
	users.PATCH("/:username/", UpdateUserHandler(d.Users))
	users.DELETE("/:username/", DeleteUserHandler(d.Users))

	return r, nil
}
