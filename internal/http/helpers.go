package http

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/session"
)

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. On failure it responds with a 400 and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return 0, false
	}
	return uint(id), true
}

// csrfToken returns the per-request CSRF token set by the middleware,
// empty when CSRF protection is disabled.
func csrfToken(c *gin.Context) string {
	return c.GetString(session.ContextKeyCSRFToken)
}

// cachedTokenPlaceholder stands in for the CSRF token inside cached
// pages. The token is bound to the caller's session cookie, so a page
// cached with one session's token would hand every later visitor a
// token their own session rejects.
const cachedTokenPlaceholder = "__csrf_token__"

func stripCSRFToken(body []byte, token string) []byte {
	if token == "" {
		return body
	}
	return bytes.ReplaceAll(body, []byte(token), []byte(cachedTokenPlaceholder))
}

func injectCSRFToken(body []byte, token string) []byte {
	if token == "" {
		return body
	}
	return bytes.ReplaceAll(body, []byte(cachedTokenPlaceholder), []byte(token))
}

// respondInternalError logs the error and sends a generic 500 page.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// recordingWriter tees the response body into a buffer so a rendered
// page can be stored in the response cache.
type recordingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newRecordingWriter(w gin.ResponseWriter) *recordingWriter {
	return &recordingWriter{ResponseWriter: w, body: &bytes.Buffer{}}
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
