package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// License renders the license management placeholder page.
func (h *PageHandler) License(c *gin.Context) {
	c.HTML(http.StatusOK, "license.html", h.basePageData(c))
}

// NotFound renders the branded catch-all page.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", h.basePageData(c))
}

// Logout ends the backend session and sends the browser to the login page.
// A failed logout is surfaced as an error page rather than being swallowed.
func (h *PageHandler) Logout(c *gin.Context) {
	if err := h.client.Logout(c.Request.Context(), cookiesFrom(c)); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		data := h.basePageData(c)
		data.Alert = "Error calling logout"
		c.HTML(http.StatusBadGateway, "error.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, h.loginPath)
}
