package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/loomline/admin-api/internal/utils"
)

func ginContextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "zero page falls back", query: "page=0&limit=5", wantPage: 1, wantLimit: 5},
		{name: "negative limit falls back", query: "page=2&limit=-1", wantPage: 2, wantLimit: 10},
		{name: "garbage falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: 10},
		{name: "large limit is not capped", query: "limit=10000", wantPage: 1, wantLimit: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ginContextWithQuery(tt.query)
			page, limit := parsePagination(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: utils.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate sku", err: utils.ErrDuplicateSKU, wantStatus: http.StatusBadRequest},
		{name: "duplicate code", err: utils.ErrDuplicateCode, wantStatus: http.StatusBadRequest},
		{name: "duplicate email", err: utils.ErrDuplicateEmail, wantStatus: http.StatusBadRequest},
		{name: "invalid status", err: utils.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "validation", err: utils.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "bad credentials", err: utils.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "role not allowed", err: utils.ErrRoleNotAllowed, wantStatus: http.StatusForbidden},
		{name: "unknown error hides detail", err: errors.New("pq: relation missing"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "relation missing")
			}
		})
	}
}
