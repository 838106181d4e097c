package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// ContextKeyCSRFToken is the gin context key holding the per-request
// CSRF token for templates.
const ContextKeyCSRFToken = "csrf_token"

// GenerateCSRFSecret returns a random 32-byte secret, hex-encoded.
func GenerateCSRFSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return hex.EncodeToString(secret), nil
}

// CSRFMiddleware creates a Gin middleware protecting mutating form
// posts. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through
// unchecked.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		var passed bool
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			// Expose the token to templates and carry the CSRF
			// context forward for the rest of the chain.
			c.Set(ContextKeyCSRFToken, csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection gorilla writes the response and the inner
		// handler never runs; gin's dispatch loop must not continue
		// into the controllers.
		if !passed {
			c.Abort()
		}
	}
}

// csrfErrorHandler redirects failed form submissions back to the
// referer with an error hint instead of a bare 403 page.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer != "" {
		http.Redirect(w, r, referer, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("The form submission was invalid or the session expired. Go back and try again."))
}
