package routes

import (
	"net/http"
	"time"

	"roomie/config"
	"roomie/handlers"
	"roomie/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, chat *handlers.ChatHandler) {
	api := r.Group("/api/chat")
	{
		api.POST("", chat.HandleChat)
		api.GET("/history", chat.GetChatHistory)
	}
}

// RegisterRoutes wires up middleware and all endpoint groups.
func RegisterRoutes(r *gin.Engine, chat *handlers.ChatHandler, health *handlers.HealthHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Roomie Chatbot API is running"})
	})
	r.GET("/api/health", health.Health)

	RegisterChatRoutes(r, chat)
}
