package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poinet/profiler-backend-go/internal/config"
	"github.com/poinet/profiler-backend-go/internal/handler"
	"github.com/poinet/profiler-backend-go/internal/middleware"
)

// SetupRouter builds the HTTP router for the profiler API.
func SetupRouter(cfg *config.Config, profileHandler *handler.ProfileHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Profiler API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(30, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		api.GET("/profile/:id", profileHandler.GetProfile)
	}

	return r
}
