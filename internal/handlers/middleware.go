package handlers

import (
	"time"

	"blog/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"

	msgLoginRequired = "Please log in to view this page!"
)

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(requestIDKey, rid)
	c.Header(requestIDHeader, rid)

	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", rid,
		)
	}
}

// loginRequired stops anonymous clients before the handler runs and sends
// them to the login page with a flash.
func (h *Handler) loginRequired(c *gin.Context) {
	s := session.Get(c)
	if !s.Authenticated() {
		s.AddFlash(session.Danger, msgLoginRequired)
		h.redirect(c, "/login")
		c.Abort()
		return
	}
	c.Next()
}
