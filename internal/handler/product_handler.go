package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/turboshop/parts_api/internal/service"
	"github.com/turboshop/parts_api/internal/utils"
)

// ProductHandler handles the single-product detail endpoint.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProductBySKU returns the merged multi-offer detail for one SKU.
func (h *ProductHandler) GetProductBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		utils.Error(c, http.StatusBadRequest, "SKU is required", "missing sku path parameter")
		return
	}

	detail, err := h.catalogService.GetProductDetail(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.NotFoundSKU(c, sku)
			return
		}
		log.Error().Err(err).Str("sku", sku).Msg("product detail failed")
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch product details", err.Error())
		return
	}

	c.JSON(http.StatusOK, detail)
}
