package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactform/internal/session"
)

const sessionKey = "contactform.session"

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		if sess, ok := c.Get(sessionKey); ok {
			event = event.Str("session", sess.(*session.Session).ID())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// sessionMiddleware resolves the caller's session from its cookie, minting a
// new one when the cookie is missing or has expired.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(s.cookieName)
		sess, created := s.sessions.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(s.cookieName, sess.ID(), int(s.cookieMaxAge/time.Second), "/", "", false, true)
			s.log.Debug().Str("session", sess.ID()).Msg("session created")
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
