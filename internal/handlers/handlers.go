package handlers

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/middleware"
	"github.com/ElephaSolutions/rtoappfrontend/internal/service"
)

// PageHandler renders every page of the front-end. All persistent state
// lives in the remote backend; handlers hold only the client and settings.
type PageHandler struct {
	client    *backend.Client
	logger    *zap.Logger
	loginPath string
}

func NewPageHandler(client *backend.Client, loginPath string, logger *zap.Logger) *PageHandler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &PageHandler{
		client:    client,
		logger:    logger,
		loginPath: loginPath,
	}
}

// pageData is the base payload every template receives.
type pageData struct {
	Brand    branding.BusinessConfig
	ThemeCSS template.CSS
	Active   string
	Client   string
	Notice   string
	Alert    string
}

// basePageData assembles branding, nav state, and any flash messages carried
// across a redirect as query parameters.
func (h *PageHandler) basePageData(c *gin.Context) pageData {
	brand := middleware.BrandingFrom(c)
	return pageData{
		Brand:    brand,
		ThemeCSS: brand.Theme.CSSVariables(),
		Active:   c.Request.URL.Path,
		Client:   c.Query(constants.ClientQueryParam),
		Notice:   c.Query("notice"),
		Alert:    c.Query("alert"),
	}
}

// redirect issues a see-other redirect carrying the client selector and any
// flash parameters.
func (h *PageHandler) redirect(c *gin.Context, path string, params url.Values) {
	if params == nil {
		params = url.Values{}
	}
	if client := c.Query(constants.ClientQueryParam); client != "" {
		params.Set(constants.ClientQueryParam, client)
	}
	target := path
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusSeeOther, target)
}

// redirectToLogin handles 401/403 from the backend: no error banner, just
// the login page.
func (h *PageHandler) redirectToLogin(c *gin.Context) {
	h.logger.Warn("Backend session rejected, redirecting to login",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.RequestIDFrom(c)))
	c.Redirect(http.StatusSeeOther, h.loginPath)
}

// cookiesFrom pulls the browser's cookies off the incoming request so each
// backend call carries the caller's session.
func cookiesFrom(c *gin.Context) []*http.Cookie {
	return c.Request.Cookies()
}

func badgeClass(v service.Validity) string {
	switch v {
	case service.ValidityExpired:
		return "badge-expired"
	case service.ValidityExpiringSoon:
		return "badge-soon"
	default:
		return "badge-valid"
	}
}
