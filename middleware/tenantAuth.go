package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reservo/utils"
)

// WidgetAuthMiddleware validates the widget token and pins the tenant id on
// the request context. When optional is true, requests without a token pass
// through with the configured default tenant left for the handler to apply.
func WidgetAuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tenantID, err := utils.ExtractTenantFromToken(tokenString)
		if err != nil || tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("tenantID", tenantID)
		c.Next()
	}
}

// TenantFromContext returns the authenticated tenant id, or the fallback
// when the request carried no token.
func TenantFromContext(c *gin.Context, fallback string) string {
	if v, ok := c.Get("tenantID"); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return fallback
}
