package webui

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName    = "backoffice_session"
	sessionMaxAge  = 8 * 60 * 60
	keyLoggedIn    = "logged_in"
	keySidebarOpen = "sidebar_open"

	flashError   = "error"
	flashSuccess = "success"
)

func newSessionStore(secret string, secure bool) sessions.Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// session never returns nil. A cookie that fails to decode yields a fresh session.
func (s *Server) session(c *gin.Context) *sessions.Session {
	sess, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		log.Printf("⚠️ discarding unreadable session cookie: %v", err)
	}
	return sess
}

func (s *Server) save(c *gin.Context, sess *sessions.Session) {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		log.Printf("❌ save session: %v", err)
	}
}

func (s *Server) loggedIn(c *gin.Context) bool {
	ok, _ := s.session(c).Values[keyLoggedIn].(bool)
	return ok
}

func (s *Server) sidebarOpen(c *gin.Context) bool {
	open, _ := s.session(c).Values[keySidebarOpen].(bool)
	return open
}

func (s *Server) toggleSidebar(c *gin.Context) {
	sess := s.session(c)
	sess.Values[keySidebarOpen] = !s.sidebarOpen(c)
	s.save(c, sess)
	c.Redirect(http.StatusSeeOther, returnPath(c, homePath))
}

// flash queues a message for the next rendered page.
func (s *Server) flash(c *gin.Context, kind, msg string) {
	sess := s.session(c)
	sess.AddFlash(msg, kind)
	s.save(c, sess)
}

// takeFlashes pops queued messages. It must run before the response is written.
func (s *Server) takeFlashes(c *gin.Context) (errs, infos []string) {
	sess := s.session(c)
	for _, f := range sess.Flashes(flashError) {
		if msg, ok := f.(string); ok {
			errs = append(errs, msg)
		}
	}
	for _, f := range sess.Flashes(flashSuccess) {
		if msg, ok := f.(string); ok {
			infos = append(infos, msg)
		}
	}
	if len(errs)+len(infos) > 0 {
		s.save(c, sess)
	}
	return errs, infos
}

// returnPath reads the "return" form value, accepting local paths only.
func returnPath(c *gin.Context, fallback string) string {
	p := c.PostForm("return")
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return fallback
	}
	return p
}
