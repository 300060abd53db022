package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/repository"
	"github.com/loomline/admin-api/internal/utils"
)

// ReferralHandler handles referral code and usage requests.
type ReferralHandler struct {
	repo *repository.ReferralRepository
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(repo *repository.ReferralRepository) *ReferralHandler {
	return &ReferralHandler{repo: repo}
}

// ListCodes returns all referral codes with owner names.
// GET /api/admin/referral-codes
func (h *ReferralHandler) ListCodes(c *gin.Context) {
	codes, err := h.repo.ListCodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if codes == nil {
		codes = []models.ReferralCode{}
	}
	c.JSON(http.StatusOK, codes)
}

type referralCodeRequest struct {
	UserID       int     `json:"user_id"`
	Code         string  `json:"code" binding:"required"`
	RewardAmount float64 `json:"reward_amount"`
}

// GetCodeByUser returns the referral code owned by a customer.
// GET /api/admin/referral-codes/:id (the segment is a customer id)
func (h *ReferralHandler) GetCodeByUser(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	code, err := h.repo.GetCodeByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

// CreateCode adds a referral code for a customer.
// POST /api/admin/referral-codes
func (h *ReferralHandler) CreateCode(c *gin.Context) {
	var req referralCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Code is required")
		return
	}
	if req.UserID < 1 {
		utils.Error(c, http.StatusBadRequest, "A valid user_id is required")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		utils.Error(c, http.StatusBadRequest, "Code is required")
		return
	}

	code := &models.ReferralCode{
		UserID:       req.UserID,
		Code:         req.Code,
		RewardAmount: req.RewardAmount,
	}
	if err := h.repo.CreateCode(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// UpdateCode changes a referral code or its reward amount.
// PUT /api/admin/referral-codes/:id
func (h *ReferralHandler) UpdateCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req referralCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Code is required")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		utils.Error(c, http.StatusBadRequest, "Code is required")
		return
	}

	code := &models.ReferralCode{
		ID:           id,
		Code:         req.Code,
		RewardAmount: req.RewardAmount,
	}
	if err := h.repo.UpdateCode(c.Request.Context(), code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

// DeleteCode removes a referral code.
// DELETE /api/admin/referral-codes/:id
func (h *ReferralHandler) DeleteCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteCode(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, "Referral code deleted")
}

// ListUsage returns all referral usage records.
// GET /api/admin/referral-usage
func (h *ReferralHandler) ListUsage(c *gin.Context) {
	usage, err := h.repo.ListUsage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if usage == nil {
		usage = []models.ReferralUsage{}
	}
	c.JSON(http.StatusOK, usage)
}

// MarkRewardApplied flags a usage record as rewarded.
// PUT /api/admin/referral-usage/:id/reward
func (h *ReferralHandler) MarkRewardApplied(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.MarkRewardApplied(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, "Reward marked as applied")
}
