package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/service"
	"github.com/loomline/admin-api/internal/utils"
)

// OrderHandler handles order intake and back-office order management.
type OrderHandler struct {
	orders *service.OrderService
	repo   *repository.OrderRepository
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService, repo *repository.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders, repo: repo}
}

// Create accepts an order submission from the storefront.
// POST /api/admin/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid order payload")
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List returns all order headers without pagination.
// GET /api/admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// ListPaginated returns one page of order headers, optionally filtered by status.
// GET /api/admin/orders/paginated
func (h *OrderHandler) ListPaginated(c *gin.Context) {
	page, limit := parsePagination(c)

	status := c.Query("status")
	if status != "" && !models.IsValidOrderStatus(status) {
		utils.Error(c, http.StatusBadRequest, "Invalid order status")
		return
	}

	orders, total, err := h.repo.ListPaginated(c.Request.Context(), page, limit, status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Paginated(c, total, page, limit, orders)
}

// Get returns an order with its items and status history.
// GET /api/admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.repo.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	ChangedBy string `json:"changed_by"`
}

// UpdateStatus transitions an order to a new status.
// PATCH /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Status is required")
		return
	}

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = c.GetString("full_name")
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status, changedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
