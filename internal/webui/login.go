package webui

import (
	"crypto/subtle"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const invalidCredentials = "Invalid username or password"

func (s *Server) loginPage(c *gin.Context) {
	if s.loggedIn(c) {
		c.Redirect(http.StatusSeeOther, homePath)
		return
	}
	s.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// login answers 401 on bad credentials and redirects on success; the rate
// limiter in front of it keys on those statuses.
func (s *Server) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if !s.checkCredentials(username, password) {
		log.Printf("⚠️ console login refused for %q", username)
		s.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title":    "Login",
			"Username": username,
			"Errors":   []string{invalidCredentials},
		})
		return
	}

	sess := s.session(c)
	sess.Values[keyLoggedIn] = true
	s.save(c, sess)
	log.Printf("✅ console login for %q", username)
	c.Redirect(http.StatusSeeOther, homePath)
}

// checkCredentials compares both fields in constant time.
func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.opts.AdminUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword))
	return userOK&passOK == 1
}

func (s *Server) loginBlocked(c *gin.Context, retryAfter time.Duration) {
	minutes := int(math.Ceil(retryAfter.Minutes()))
	c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
	s.render(c, http.StatusTooManyRequests, "login.html", gin.H{
		"Title":    "Login",
		"Username": c.PostForm("username"),
		"Errors":   []string{fmt.Sprintf("Too many failed attempts. Try again in %d minute(s).", minutes)},
	})
}

func (s *Server) logout(c *gin.Context) {
	sess := s.session(c)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	s.save(c, sess)
	c.Redirect(http.StatusSeeOther, loginPath)
}
