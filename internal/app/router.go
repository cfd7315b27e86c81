package app

import (
	"net/http"

	"quizbank_backend/docs"
	"quizbank_backend/internal/config"
	"quizbank_backend/internal/middleware"
	"quizbank_backend/internal/model"
	"quizbank_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// Swagger 文档
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus 指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 公开路由
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.POST("/logout", c.auth.Logout)
		}

		// 图片读取不需要登录，前端 <img> 标签直接引用
		api.GET("/image/:id", c.upload.GetImage)

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			quiz := authorized.Group("/quiz")
			{
				quiz.GET("", c.quiz.GetQuizzes)
				quiz.POST("/:id/submit", c.quiz.SubmitAnswer)

				// 题目管理仅限管理员
				admin := quiz.Group("")
				admin.Use(middleware.RoleMiddleware(model.Admin))
				{
					admin.GET("/questions", c.quiz.GetQuestions)
					admin.POST("", c.quiz.CreateQuiz)
					admin.PUT("/:id", c.quiz.UpdateQuiz)
					admin.DELETE("/:id", c.quiz.DeleteQuiz)
					admin.POST("/batch", c.quiz.BatchImport)
					admin.POST("/batch-delete", c.quiz.BatchDelete)
				}
			}

			user := authorized.Group("/user")
			{
				user.GET("/profile", c.user.GetProfile)
				user.PUT("/profile", c.user.UpdateProfile)
				user.GET("/scores", c.user.GetScores)
				user.GET("/leaderboard", c.user.GetLeaderboard)
				user.GET("/list", middleware.RoleMiddleware(model.Admin), c.user.ListUsers)
			}

			authorized.POST("/upload", c.upload.Upload)
			authorized.POST("/upload/multiple", c.upload.UploadMultiple)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "route not found"})
	})
}
