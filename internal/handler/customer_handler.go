package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/utils"
)

// CustomerHandler handles customer directory requests.
type CustomerHandler struct {
	repo *repository.CustomerRepository
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(repo *repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

// List returns all customers without pagination.
// GET /api/admin/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

// ListPaginated returns one page of customers with live order counts.
// GET /api/admin/customers/paginated
func (h *CustomerHandler) ListPaginated(c *gin.Context) {
	page, limit := parsePagination(c)

	customers, total, err := h.repo.ListPaginated(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Paginated(c, total, page, limit, customers)
}

// Get returns a customer with recent orders.
// GET /api/admin/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	customer, err := h.repo.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

type createCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// Create registers a customer manually.
// POST /api/admin/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Name and a valid email are required")
		return
	}
	if req.Status == "" {
		req.Status = "Active"
	}

	customer := &models.Customer{
		Name:    req.Name,
		Email:   &req.Email,
		Phone:   optional(req.Phone),
		Address: optional(req.Address),
		Status:  req.Status,
		Notes:   optional(req.Notes),
	}
	if err := h.repo.Create(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}
