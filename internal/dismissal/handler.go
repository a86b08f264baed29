package dismissal

import (
	"net/http"

	"github.com/dustin/watchly-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for dismissal operations
type Handler struct {
	service Service
}

// NewHandler creates a new dismissal handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Dismiss handles dismissing a recommended title
func (h *Handler) Dismiss(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req DismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Dismiss(userID, req.MediaType, req.TMDBID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss title"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Title dismissed"})
}

// RegisterRoutes registers all dismissal routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	dismissals := router.Group("/dismissals")
	dismissals.Use(authMiddleware)
	{
		dismissals.POST("", h.Dismiss)
	}
}
