package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the standard failure envelope.
func Error(c *gin.Context, code int, errMsg, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   errMsg,
		"message": message,
	})
}

// NotFoundSKU writes the product-not-found failure with the requested SKU
// echoed back to the caller.
func NotFoundSKU(c *gin.Context, sku string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Product not found",
		"sku":     sku,
	})
}
