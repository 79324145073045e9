package app

import (
	"survey_tool_backend/docs"
	"survey_tool_backend/internal/config"
	"survey_tool_backend/internal/middleware"
	"survey_tool_backend/internal/model"
	"survey_tool_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）：问卷浏览与答卷提交面向受访者开放
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/surveys", c.survey.List)
		public.GET("/surveys/:id", c.survey.Get)
		public.POST("/surveys/:id/responses", c.response.Submit)
	}

	// 操作员路由：问卷编辑与回答查询
	operator := router.Group("/api")
	operator.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Operator))
	{
		operator.POST("/surveys", c.survey.Create)
		operator.PUT("/surveys/:id", c.survey.Update)
		operator.DELETE("/surveys/:id", c.survey.Delete)

		operator.GET("/surveys/:id/responses", c.response.List)
		operator.GET("/surveys/:id/responses/:responseId", c.response.Get)
	}
}
