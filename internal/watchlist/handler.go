package watchlist

import (
	"net/http"
	"strconv"

	"github.com/dustin/watchly-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for watchlist operations
type Handler struct {
	service Service
}

// NewHandler creates a new watchlist handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// AddItem handles adding a title to the watchlist
func (h *Handler) AddItem(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.AddItem(userID, &req)
	if err != nil {
		if err.Error() == "title already on watchlist" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add watchlist item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetWatchlist handles listing the user's watchlist
func (h *Handler) GetWatchlist(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	items, err := h.service.GetWatchlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// UpdateItem handles status and rating changes for a watchlist title
func (h *Handler) UpdateItem(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	mediaType := c.Param("mediaType")
	tmdbID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(userID, mediaType, tmdbID, &req)
	if err != nil {
		switch err.Error() {
		case "watchlist item not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist item not found"})
		case "rating requires watched status":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update watchlist item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem handles removing a title from the watchlist
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	mediaType := c.Param("mediaType")
	tmdbID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title ID"})
		return
	}

	if err := h.service.RemoveItem(userID, mediaType, tmdbID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Watchlist item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watchlist item removed"})
}

// RegisterRoutes registers all watchlist routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	watchlist := router.Group("/watchlist")
	watchlist.Use(authMiddleware)
	{
		watchlist.GET("", h.GetWatchlist)
		watchlist.POST("", h.AddItem)
		watchlist.PUT("/:mediaType/:id", h.UpdateItem)
		watchlist.DELETE("/:mediaType/:id", h.RemoveItem)
	}
}
