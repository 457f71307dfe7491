package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/utils"
)

// ServiceTokenRequired guards mutations with an HS256 bearer token. Reads pass
// through, and so does everything when secret is empty.
func ServiceTokenRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		subject, err := utils.ParseServiceToken(secret, parts[1])
		if err != nil {
			log.Printf("❌ rejected service token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(utils.CtxActor, subject)
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
