package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/utils"
)

// CouponHandler handles coupon management requests.
type CouponHandler struct {
	repo *repository.CouponRepository
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(repo *repository.CouponRepository) *CouponHandler {
	return &CouponHandler{repo: repo}
}

// List returns all coupons.
// GET /api/admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	c.JSON(http.StatusOK, coupons)
}

func validateCoupon(cp *models.Coupon) string {
	if strings.TrimSpace(cp.Code) == "" {
		return "Code is required"
	}
	if cp.DiscountType != models.DiscountTypeFlat && cp.DiscountType != models.DiscountTypePercentage {
		return "Discount type must be flat or percentage"
	}
	if cp.DiscountValue <= 0 {
		return "Discount value must be positive"
	}
	if cp.DiscountType == models.DiscountTypePercentage && cp.DiscountValue > 100 {
		return "Percentage discount cannot exceed 100"
	}
	return ""
}

// Create adds a coupon.
// POST /api/admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var cp models.Coupon
	if err := c.ShouldBindJSON(&cp); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid coupon payload")
		return
	}
	if msg := validateCoupon(&cp); msg != "" {
		utils.Error(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &cp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}

// Update replaces a coupon.
// PUT /api/admin/coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var cp models.Coupon
	if err := c.ShouldBindJSON(&cp); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid coupon payload")
		return
	}
	if msg := validateCoupon(&cp); msg != "" {
		utils.Error(c, http.StatusBadRequest, msg)
		return
	}
	cp.ID = id

	if err := h.repo.Update(c.Request.Context(), &cp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}

// Delete removes a coupon.
// DELETE /api/admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, "Coupon deleted")
}
