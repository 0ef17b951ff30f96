package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
)

const brandingKey = "business_config"

// Branding resolves the client's branding entry from the `client` query
// parameter and makes it available to every page handler. Resolution never
// fails; unknown clients get the default entry.
func Branding(store *branding.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.Query(constants.ClientQueryParam)
		c.Set(brandingKey, store.ForClient(client))
		c.Next()
	}
}

// BrandingFrom returns the resolved branding entry for the request, falling
// back to the compiled-in default if the middleware did not run.
func BrandingFrom(c *gin.Context) branding.BusinessConfig {
	if v, ok := c.Get(brandingKey); ok {
		if cfg, ok := v.(branding.BusinessConfig); ok {
			return cfg
		}
	}
	return branding.Fallback()
}
