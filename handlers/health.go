package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler reports liveness of the service's external dependencies.
type HealthHandler struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewHealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{Mongo: mongoClient, Redis: redisClient}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoOK := h.Mongo.Ping(ctx, nil) == nil
	redisOK := h.Redis.Ping(ctx).Err() == nil

	status := http.StatusOK
	if !mongoOK || !redisOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"mongo":     mongoOK,
		"redis":     redisOK,
		"checkedAt": time.Now(),
	})
}
