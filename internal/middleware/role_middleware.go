package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loomline/admin-api/internal/utils"
)

// RequireRole gates a route to the given roles. Must run after the JWT
// middleware, which puts the role on the context.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			utils.Error(c, http.StatusForbidden, "Forbidden: insufficient role.")
			c.Abort()
			return
		}
		c.Next()
	}
}
