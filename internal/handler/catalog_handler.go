package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/turboshop/parts_api/internal/models"
	"github.com/turboshop/parts_api/internal/service"
	"github.com/turboshop/parts_api/internal/utils"
)

// CatalogHandler handles the unified catalog endpoint.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCatalog returns the merged catalog with optional filters and pagination.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	page := 1
	limit := 20
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	filters := models.Filters{
		Search: c.Query("search"),
		Brand:  c.Query("brand"),
		Model:  c.Query("model"),
		Year:   c.Query("year"),
	}

	result, err := h.catalogService.GetCatalog(c.Request.Context(), page, limit, filters)
	if err != nil {
		log.Error().Err(err).Msg("catalog aggregation failed")
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch catalog", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   result.Products,
		"total":      result.Pagination.TotalItems,
		"page":       result.Pagination.CurrentPage,
		"totalPages": result.Pagination.TotalPages,
		"pagination": result.Pagination,
		"providers":  result.Providers,
	})
}
