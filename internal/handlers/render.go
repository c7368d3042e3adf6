package handlers

import (
	"net/http"
	"strconv"

	"blog/internal/session"

	"github.com/gin-gonic/gin"
)

const msgInternalError = "Something went wrong. Please try again later."

// render fills the layout fields, consumes pending flashes and writes the page.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	s := session.Get(c)
	if data == nil {
		data = gin.H{}
	}
	data["LoggedIn"] = s.Authenticated()
	data["CurrentUser"] = s.CurrentUser()
	data["Flashes"] = s.Flashes()

	h.saveSession(c)
	c.HTML(status, name, data)
}

func (h *Handler) redirect(c *gin.Context, location string) {
	h.saveSession(c)
	c.Redirect(http.StatusFound, location)
}

// flashRedirect queues a flash for the next rendered page and redirects.
func (h *Handler) flashRedirect(c *gin.Context, category, message, location string) {
	session.Get(c).AddFlash(category, message)
	h.redirect(c, location)
}

func (h *Handler) saveSession(c *gin.Context) {
	if err := h.sessions.Save(c); err != nil && h.log != nil {
		h.log.Errorw("session_save_failed", "err", err)
	}
}

// fail logs a store failure and renders the 500 page.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Status":  http.StatusInternalServerError,
		"Message": msgInternalError,
	})
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Status":  http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
}

// articleID parses the :id path parameter; ids are positive integers.
func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
