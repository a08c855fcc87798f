// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/frameit/frameit-backend/internal/services"
	"github.com/frameit/frameit-backend/internal/utils"
)

// CatalogHandler serves the public storefront endpoints: product listings,
// product detail by slug and try-on model listings.
type CatalogHandler struct {
	productService *services.ProductService
	glassesService *services.GlassesService
}

func NewCatalogHandler(productService *services.ProductService, glassesService *services.GlassesService) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
		glassesService: glassesService,
	}
}

// GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListActive(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /api/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Param("slug"))
	if err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /api/glasses-models
func (h *CatalogHandler) ListGlassesModels(c *gin.Context) {
	glasses, err := h.glassesService.ListActive()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load glasses models")
		return
	}

	utils.SuccessResponse(c, glasses)
}
