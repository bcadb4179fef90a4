package router

import (
	"user-directory-service/internal/adapter/gin/handler"
	"user-directory-service/internal/adapter/gin/middleware"
	"user-directory-service/internal/adapter/ratelimit"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	// Registers the Swagger document served under /docs
	_ "user-directory-service/internal/docs"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	mockHandler *handler.MockHandler,
	rateLimiter *ratelimit.Limiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimiter(rateLimiter, log))

	router.GET("/", mockHandler.Root)
	router.GET("/health", mockHandler.Health)

	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/search", mockHandler.SearchUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
		users.POST("/:id/avatar", mockHandler.UploadAvatar)
		users.DELETE("/:id/avatar", mockHandler.DeleteAvatar)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/login", mockHandler.Login)
		auth.POST("/logout", mockHandler.Logout)
		auth.POST("/forgot-password", mockHandler.ForgotPassword)
		auth.POST("/reset-password", mockHandler.ResetPassword)
	}

	admin := router.Group("/admin")
	{
		admin.GET("/users", mockHandler.AdminListUsers)
		admin.POST("/users/:id/ban", mockHandler.BanUser)
		admin.GET("/statistics", mockHandler.Statistics)
	}

	router.GET("/export/users", mockHandler.ExportUsers)

	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	)))

	router.NoRoute(mockHandler.NotFound)

	return router
}
