package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/utils"
)

// Stock at or below this level counts as low unless overridden by query.
const defaultLowStockThreshold = 5

// ProductHandler handles catalog management requests.
type ProductHandler struct {
	repo *repository.ProductRepository
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(repo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List returns the full catalog without pagination.
// GET /api/admin/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// ListPaginated returns one page of products.
// GET /api/admin/products/paginated
func (h *ProductHandler) ListPaginated(c *gin.Context) {
	page, limit := parsePagination(c)

	products, total, err := h.repo.ListPaginated(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Paginated(c, total, page, limit, products)
}

// Get returns a single product with its gallery.
// GET /api/admin/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create adds a product.
// POST /api/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid product payload")
		return
	}
	if p.Name == "" || p.SKU == "" {
		utils.Error(c, http.StatusBadRequest, "Name and SKU are required")
		return
	}

	if err := h.repo.Create(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update replaces a product.
// PUT /api/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid product payload")
		return
	}
	if p.Name == "" || p.SKU == "" {
		utils.Error(c, http.StatusBadRequest, "Name and SKU are required")
		return
	}
	p.ID = id

	if err := h.repo.Update(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete removes a product.
// DELETE /api/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, "Product deleted")
}

// LowStock lists products at or below the stock threshold.
// GET /api/admin/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", strconv.Itoa(defaultLowStockThreshold)))
	if err != nil || threshold < 0 {
		threshold = defaultLowStockThreshold
	}

	products, err := h.repo.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []models.LowStockProduct{}
	}
	c.JSON(http.StatusOK, products)
}
