package app

import (
	"hedgefront_backend/docs"
	"hedgefront_backend/internal/config"
	"hedgefront_backend/internal/middleware"
	"hedgefront_backend/internal/model"
	"hedgefront_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Authenticated by a shared secret header, not a user token.
		public.POST("/billing/webhook", c.billing.Webhook)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.GET("/leaderboard", c.user.Leaderboard)

	rg.GET("/courses/worlds", c.course.ListWorlds)
	rg.GET("/courses/lessons/:id", c.course.GetLessonDetail)
	rg.POST("/courses/lessons/:id/comments", c.course.AddComment)

	rg.POST("/progress/lessons/:id/complete", c.progress.CompleteLesson)

	rg.POST("/submissions/upload-url", c.submission.UploadURL)
	rg.POST("/submissions", c.submission.Submit)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor, model.Admin))
	{
		admin.GET("/stats", c.admin.Stats)
		admin.GET("/submissions", c.admin.ListPendingSubmissions)
		admin.POST("/submissions/:id/grade", c.admin.GradeSubmission)

		admin.POST("/worlds", c.admin.CreateWorld)
		admin.PUT("/worlds/:id", c.admin.UpdateWorld)
		admin.POST("/worlds/:id/levels", c.admin.CreateLevel)
		admin.POST("/levels/:id/lessons", c.admin.CreateLesson)
		admin.POST("/lessons/:id/video", c.admin.UploadLessonVideo)
	}
}
