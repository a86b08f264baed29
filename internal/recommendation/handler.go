package recommendation

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/watchly-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for recommendation operations
type Handler struct {
	service Service
}

// NewHandler creates a new recommendation handler
func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RecommendationsResponse is the API envelope for both operations
type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// GetRecommendations handles the personalized recommendation feed
func (h *Handler) GetRecommendations(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	req := parseRequest(c)
	recs := h.service.GetRecommendations(c.Request.Context(), userID, req)
	recs = applyLimit(recs, c.Query("limit"))

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
		GeneratedAt:     time.Now(),
	})
}

// GetHiddenGems handles the hidden-gems discovery feed
func (h *Handler) GetHiddenGems(c *gin.Context) {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	req := parseRequest(c)
	recs := h.service.GetHiddenGems(c.Request.Context(), userID, req)
	recs = applyLimit(recs, c.Query("limit"))

	c.JSON(http.StatusOK, RecommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
		GeneratedAt:     time.Now(),
	})
}

// parseRequest reads the generation inputs from query parameters:
// providers (comma-separated platform ids), region, movies/tv toggles
// and an optional genre filter.
func parseRequest(c *gin.Context) Request {
	req := Request{
		Region:  c.DefaultQuery("region", "US"),
		Filters: DefaultFilters(),
	}

	req.ProviderIDs = parseIDList(c.Query("providers"))

	if c.DefaultQuery("movies", "true") == "false" {
		req.Filters.FetchMovies = false
	}
	if c.DefaultQuery("tv", "true") == "false" {
		req.Filters.FetchTV = false
	}
	req.Filters.GenreIDs = parseIDList(c.Query("genres"))

	return req
}

// applyLimit truncates the list when a positive limit is given; the limit
// only trims output, generation always targets the configured count
func applyLimit(recs []Recommendation, raw string) []Recommendation {
	if raw == "" {
		return recs
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit >= len(recs) {
		return recs
	}
	return recs[:limit]
}

func parseIDList(raw string) []int {
	if raw == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	recommendations := router.Group("/recommendations")
	recommendations.Use(authMiddleware)
	{
		recommendations.GET("", h.GetRecommendations)
		recommendations.GET("/hidden-gems", h.GetHiddenGems)
	}
}
