package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	enrichment *usecase.EnrichmentService
}

// NewHandler creates a new HTTP handler
func NewHandler(enrichment *usecase.EnrichmentService) *Handler {
	return &Handler{enrichment: enrichment}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricecart-backend",
		"version": "1.0.0",
	})
}

// RunEnrichment triggers a full batch enrichment run and returns its report
func (h *Handler) RunEnrichment(c *gin.Context) {
	report, err := h.enrichment.EnrichAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetProduct returns the canonical product for a listing id
func (h *Handler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.enrichment.ProductByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetMatches returns the accepted cross-platform matches for a listing id
func (h *Handler) GetMatches(c *gin.Context) {
	id := c.Param("id")

	matches, err := h.enrichment.MatchesFor(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listingId": id,
		"matches":   matches,
		"count":     len(matches),
	})
}
