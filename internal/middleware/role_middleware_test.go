package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleTestRouter(contextRole string, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setRole := func(c *gin.Context) {
		if contextRole != "" {
			c.Set("role", contextRole)
		}
		c.Next()
	}
	r.GET("/gated", setRole, RequireRole(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{
			name:       "allowed role",
			role:       "super_admin",
			allowed:    []string{"super_admin", "inventory_manager"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "second allowed role",
			role:       "inventory_manager",
			allowed:    []string{"super_admin", "inventory_manager"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role outside the set",
			role:       "accountant",
			allowed:    []string{"super_admin", "order_manager"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no role on context",
			role:       "",
			allowed:    []string{"super_admin"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := roleTestRouter(tt.role, tt.allowed...)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/gated", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
