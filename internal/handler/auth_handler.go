package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/middleware"
	"github.com/loomline/admin-api/internal/service"
	"github.com/loomline/admin-api/internal/utils"
)

// AuthHandler handles login requests.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, limiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
// POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	if h.limiter != nil && h.limiter.Blocked(c.ClientIP()) {
		utils.Error(c, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) || errors.Is(err, utils.ErrRoleNotAllowed) {
			if h.limiter != nil {
				h.limiter.Record(c.ClientIP())
			}
			respondError(c, err)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":        result.User.ID,
			"email":     result.User.Email,
			"full_name": result.User.FullName,
			"role":      result.User.Role,
		},
	})
}
