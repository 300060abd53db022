package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/utils"
)

// parsePagination reads ?page and ?limit with the defaults page=1, limit=10.
// Values below 1 fall back to the defaults. There is no upper bound on limit.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// parseIDParam reads the :id path segment as a positive integer.
func parseIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// optional converts an empty string to a nil pointer for nullable columns.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// respondError maps application errors to HTTP responses. Unknown errors
// collapse to a generic 500 so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "Not found")
	case errors.Is(err, utils.ErrDuplicateSKU):
		utils.Error(c, http.StatusBadRequest, "SKU already exists. Please choose a unique SKU.")
	case errors.Is(err, utils.ErrDuplicateCode):
		utils.Error(c, http.StatusBadRequest, "Code already exists. Please choose a unique code.")
	case errors.Is(err, utils.ErrDuplicateEmail):
		utils.Error(c, http.StatusBadRequest, "Email already exists.")
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.Error(c, http.StatusBadRequest, "Invalid order status")
	case errors.Is(err, utils.ErrValidation):
		utils.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, utils.ErrRoleNotAllowed):
		utils.Error(c, http.StatusForbidden, "Access denied for this role")
	default:
		utils.Error(c, http.StatusInternalServerError, "Server error")
	}
}
