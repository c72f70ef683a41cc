package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reservo/config"
	"reservo/middleware"
	"reservo/models"
	"reservo/services/booking"
	"reservo/services/catalog"
	"reservo/services/dialogue"
	"reservo/utils"
)

// ChatHandler exposes the conversation endpoints.
type ChatHandler struct {
	Engine    dialogue.Engine
	Finalizer booking.FinalizerService
	Catalog   catalog.Repository
	Logger    *zap.Logger
}

func tenantID(c *gin.Context) string {
	return middleware.TenantFromContext(c, config.AppConfig.TenantID)
}

// GetTenantSettings handles GET /api/tenant/settings.
func (h *ChatHandler) GetTenantSettings(c *gin.Context) {
	cfg := config.AppConfig
	c.JSON(http.StatusOK, models.TenantSettings{
		TenantID:        tenantID(c),
		Name:            cfg.TenantName,
		Language:        cfg.Language,
		PrimaryColor:    cfg.PrimaryColor,
		GreetingMessage: cfg.GreetingMessage,
	})
}

// GetServices handles GET /api/chat/services.
func (h *ChatHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.ListServices())
}

// SendMessage handles POST /api/chat/message. One user turn in, one agent
// reply out.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.TenantID = tenantID(c)

	result, err := h.Engine.Transition(c.Request.Context(), req)
	if err != nil {
		h.Logger.Error("SendMessage: transition failed",
			zap.String("conversationID", req.ConversationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to process message",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmBooking handles POST /api/chat/confirm. It finalizes the booking
// from the conversation's accumulated context.
func (h *ChatHandler) ConfirmBooking(c *gin.Context) {
	var body struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Finalizer.ConfirmFromConversation(c.Request.Context(), body.ConversationID)
	if err != nil {
		var missing *booking.MissingSelectionError
		if errors.As(err, &missing) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "incomplete selection",
				"message": err.Error(),
			})
			return
		}
		h.Logger.Error("ConfirmBooking: finalize failed",
			zap.String("conversationID", body.ConversationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to confirm booking",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// IssueWidgetToken handles POST /api/tenant/token. Tokens scope an embedded
// widget to a tenant for 24 hours.
func (h *ChatHandler) IssueWidgetToken(c *gin.Context) {
	var body struct {
		TenantID string `json:"tenantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	token, err := utils.GenerateWidgetToken(body.TenantID, 24*time.Hour)
	if err != nil {
		h.Logger.Error("IssueWidgetToken: signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "tenantId": body.TenantID})
}
