package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khoahotran/profile-api/pkg/logger"
)

func NewRouter(userHandler *UserHandler, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), MetricsMiddleware(), RequestLogger(log), ErrorMiddleware(log))

	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "API Running") })
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return router
}
