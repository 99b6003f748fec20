package app

import (
	"survey_backend/internal/config"
	"survey_backend/internal/middleware"
	"survey_backend/pkg/monitoring"

	_ "survey_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	api := router.Group("/api")

	// 无需登录：注册登录、匿名填答、答题
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
	}

	anonymous := api.Group("/anonymous")
	{
		anonymous.GET("/:token/survey", c.survey.AnonymousGet)
		anonymous.GET("/:token/sections", c.survey.AnonymousSections)
		anonymous.POST("/:token/submit", c.submission.CreateAnonymous)
	}

	api.POST("/surveys/:id/submissions", c.submission.Create)
	api.POST("/questions/:id/answers", c.submission.CreateAnswer)
	api.PATCH("/answers/:id", c.submission.UpdateAnswer)
	api.GET("/items/:id/next", c.precond.Next)

	// 管理端：创建者登录后操作
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/creators/:id", c.auth.Profile)
		authorized.PATCH("/creators/:id", c.auth.UpdateProfile)
		authorized.DELETE("/creators/:id", c.auth.DeleteAccount)

		authorized.POST("/surveys", c.survey.Create)
		authorized.GET("/surveys", c.survey.List)
		authorized.GET("/surveys/:id", c.survey.Get)
		authorized.PATCH("/surveys/:id", c.survey.Update)
		authorized.DELETE("/surveys/:id", c.survey.Delete)
		authorized.POST("/surveys/:id/send", c.survey.Send)

		authorized.POST("/surveys/:id/items", c.item.Create)
		authorized.GET("/surveys/:id/items", c.item.List)
		authorized.PATCH("/items/:id", c.item.Update)
		authorized.DELETE("/items/:id", c.item.Delete)
		authorized.POST("/items/:id/options", c.item.AddOption)
		authorized.PATCH("/options/:id", c.item.UpdateOption)
		authorized.DELETE("/options/:id", c.item.DeleteOption)

		authorized.PATCH("/questions/:id", c.question.Update)
		authorized.DELETE("/questions/:id", c.question.Delete)

		authorized.POST("/surveys/:id/sections", c.section.Create)
		authorized.GET("/surveys/:id/sections", c.section.List)
		authorized.GET("/sections/:id/items", c.section.Items)
		authorized.PATCH("/sections/:id", c.section.Update)
		authorized.DELETE("/sections/:id", c.section.Delete)

		authorized.POST("/surveys/:id/preconditions", c.precond.Create)
		authorized.GET("/surveys/:id/preconditions", c.precond.List)
		authorized.PATCH("/preconditions/:id", c.precond.Update)
		authorized.DELETE("/preconditions/:id", c.precond.Delete)

		authorized.GET("/surveys/:id/submissions", c.submission.List)

		authorized.GET("/surveys/:id/results", c.result.SurveyResults)
		authorized.GET("/surveys/:id/results/rate", c.result.Rate)
		authorized.GET("/surveys/:id/results/export", c.result.ExportSurvey)
		authorized.GET("/questions/:id/results", c.result.QuestionResult)
		authorized.GET("/questions/:id/results/export", c.result.ExportQuestion)

		authorized.GET("/interviewees", c.interviewee.List)
		authorized.POST("/interviewees", c.interviewee.Create)
		authorized.GET("/interviewees/:id", c.interviewee.Get)
		authorized.PATCH("/interviewees/:id", c.interviewee.Update)
		authorized.DELETE("/interviewees/:id", c.interviewee.Delete)
		authorized.POST("/interviewees/upload", c.interviewee.Upload)
		authorized.GET("/interviewees/download", c.interviewee.Download)
	}
}
