package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hazypayback/internal/handler"
)

// Setup 配置 Gin 引擎和路由。
func Setup(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("hazypayback_session", store))
	r.Use(handler.RequestID())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.POST("/api/login", api.Login)
	r.GET("/api/logout", api.Logout)

	// 需要认证的账本接口
	auth := r.Group("/api")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/logs", api.ListLogs)
		auth.POST("/logs/beer", api.CreateBeerLog)
		auth.PUT("/logs/beer/:id", api.UpdateBeerLog)
		auth.POST("/logs/exercise", api.CreateExerciseLog)
		auth.PUT("/logs/exercise/:id", api.UpdateExerciseLog)
		auth.DELETE("/logs/:id", api.DeleteLog)
		auth.POST("/logs/bulk-delete", api.BulkDeleteLogs)

		auth.GET("/checks", api.ListChecks)
		auth.PUT("/checks", api.UpsertDailyCheck)

		auth.GET("/summary", api.GetSummary)
		auth.GET("/calendar", api.GetCalendar)

		auth.GET("/settings", api.GetSettings)
		auth.PUT("/settings", api.UpdateSettings)
	}

	return r
}
