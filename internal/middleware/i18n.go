// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware resolves the response language from the Accept-Language
// header. Only English is bundled today; unknown languages fall back to it.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		if header := c.GetHeader("Accept-Language"); header != "" {
			// Handle cases like "en-US,en;q=0.9,ru;q=0.8"
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			switch first {
			case "en", "en-US", "en-GB":
				lang = "en"
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
