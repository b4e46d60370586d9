package app

import (
	"adhyeta_backend/docs"
	"adhyeta_backend/internal/config"
	"adhyeta_backend/internal/middleware"
	"adhyeta_backend/internal/model"
	"adhyeta_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/forgot-password", c.auth.ForgotPassword)
		public.POST("/verify-otp", c.auth.VerifyOTP)
		public.POST("/reset-password", c.auth.ResetPassword)

		// Catalog browsing is public.
		public.GET("/courses", c.learning.ListCourses)
		public.GET("/courses/:id", c.learning.GetCourse)
		public.GET("/topics/:id/lessons", middleware.TryAuthMiddleware(a.Config), c.learning.GetLessons)
		public.GET("/exams", c.catalog.ListExams)
		public.GET("/exams/:slug", c.catalog.GetExam)
		public.GET("/subjects/:id", c.catalog.GetSubject)
		public.GET("/subjects/:id/resources", c.catalog.GetResources)

		// Demo content loaders, idempotent.
		public.POST("/seed/demo", c.learning.SeedDemo)
		public.POST("/seed/questions", c.learning.SeedQuestions)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Progress
	rg.POST("/lessons/:id/complete", c.learning.MarkLesson)
	rg.GET("/my-progress", c.learning.MyProgress)
	rg.GET("/progress/weekly", c.learning.WeeklyProgress)

	// Adaptive quiz
	rg.GET("/quiz/generate", c.quiz.Generate)
	rg.POST("/quiz/submit", c.quiz.Submit)
	rg.GET("/quiz/history", c.quiz.History)

	// Study plans
	rg.POST("/plans", c.plan.Create)
	rg.GET("/plans", c.plan.List)
	rg.GET("/plans/active", c.plan.Active)
	rg.GET("/plans/:id", c.plan.Get)
	rg.PATCH("/plans/:id/tasks/:taskId", c.plan.SetTaskDone)

	// Assistant
	rg.POST("/assistant/threads", c.assistant.StartThread)
	rg.GET("/assistant/threads/:id/messages", c.assistant.Messages)
	rg.POST("/assistant/threads/:id/messages", c.assistant.SendMessage)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Admin),
	)
	{
		admin.POST("/quiz/questions", c.quiz.CreateQuestion)

		admin.POST("/exams", c.catalog.CreateExam)
		admin.POST("/subjects", c.catalog.CreateSubject)
		admin.POST("/weightages", c.catalog.CreateWeightage)
		admin.POST("/resources", c.catalog.CreateResource)
		admin.PUT("/resources/:id", c.catalog.UpdateResource)
		admin.DELETE("/resources/:id", c.catalog.DeleteResource)
		admin.POST("/resources/papers", c.catalog.UploadPaper)
	}
}
