package handlers

import (
	"context"
	"net/http"

	"roomie/models"
	"roomie/services/booking"
	"roomie/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational turn and history endpoints.
type ChatHandler struct {
	Service booking.Service
}

func NewChatHandler(svc booking.Service) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// HandleChat processes one conversational turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if req.SessionID == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId and message are required"})
		return
	}

	// A turn runs to completion once started, even if the client disconnects
	// mid-extraction.
	resp, err := h.Service.HandleTurn(context.Background(), req.SessionID, req.Message)
	if err != nil {
		logger.Error("Chat turn failed",
			zap.String("session", req.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetChatHistory returns the transcript for a session token; unknown tokens
// yield an empty list.
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	c.JSON(http.StatusOK, gin.H{"history": h.Service.History(sessionID)})
}
