package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
)

// LoginRateLimit counts failed form logins per username. The login handler answers
// 401 on bad credentials and redirects on success; blocked renders the cooldown
// response instead of running the handler.
func LoginRateLimit(limiter *cache.LoginLimiter, blocked func(c *gin.Context, retryAfter time.Duration)) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.ToLower(strings.TrimSpace(c.PostForm("username")))
		if name == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ttl, err := limiter.Blocked(ctx, name)
		if err != nil {
			log.Printf("⚠️ login rate limit unavailable: %v", err)
		}
		if ttl > 0 {
			blocked(c, ttl)
			c.Abort()
			return
		}

		c.Next()

		switch status := c.Writer.Status(); {
		case status == http.StatusUnauthorized:
			remaining, err := limiter.Fail(ctx, name)
			if err != nil {
				log.Printf("⚠️ login attempt not counted: %v", err)
			} else if remaining == 0 {
				log.Printf("⚠️ login locked for %q during %s", name, cache.LoginCooldown)
			}
		case status >= 300 && status < 400:
			if err := limiter.Reset(ctx, name); err != nil {
				log.Printf("⚠️ login counters not reset: %v", err)
			}
		}
	}
}
