package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionResponseWriter wraps gin.ResponseWriter to intercept header
// writes so the session cookie is committed before headers go out.
type sessionResponseWriter struct {
	gin.ResponseWriter
	manager       *Manager
	request       *http.Request
	wroteHeader   bool
	cookieWritten bool
}

func (w *sessionResponseWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionResponseWriter) WriteHeaderNow() {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.writeSessionCookie()
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionResponseWriter) writeSessionCookie() {
	if w.cookieWritten {
		return
	}
	w.cookieWritten = true

	ctx := w.request.Context()
	switch w.manager.Status(ctx) {
	case 1: // Modified
		token, expiry, err := w.manager.Commit(ctx)
		if err != nil {
			return
		}
		w.manager.WriteSessionCookie(ctx, w.ResponseWriter, token, expiry)
	case 2: // Destroyed
		w.manager.WriteSessionCookie(ctx, w.ResponseWriter, "", time.Time{})
	}
}

// LoadAndSave returns a Gin middleware wrapping the session manager's
// load/commit cycle. It must run before any session operations.
func (m *Manager) LoadAndSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		cookie, err := c.Request.Cookie(m.Cookie.Name)
		if err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		srw := &sessionResponseWriter{
			ResponseWriter: c.Writer,
			manager:        m,
			request:        c.Request,
		}
		c.Writer = srw

		c.Next()

		// Ensure the cookie is committed even when no body was written
		if !srw.wroteHeader {
			srw.writeSessionCookie()
		}
	}
}
