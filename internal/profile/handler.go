package profile

import (
	"net/http"

	"github.com/dustin/watchly-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for taste profile operations
type Handler struct {
	service Service
}

// NewHandler creates a new profile handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetProfile handles fetching the user's taste profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	stored, err := h.service.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Taste profile not found"})
		return
	}

	c.JSON(http.StatusOK, stored.ToResponse())
}

// SaveProfile handles storing the onboarding quiz output
func (h *Handler) SaveProfile(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.service.SaveProfile(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save taste profile"})
		return
	}

	c.JSON(http.StatusOK, stored.ToResponse())
}

// RegisterRoutes registers all profile routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	profiles := router.Group("/profile")
	profiles.Use(authMiddleware)
	{
		profiles.GET("", h.GetProfile)
		profiles.PUT("", h.SaveProfile)
	}
}
