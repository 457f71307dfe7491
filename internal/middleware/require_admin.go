package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireLogin sends anonymous visitors to loginPath.
func RequireLogin(loggedIn func(*gin.Context) bool, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loggedIn(c) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
