package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

// Language picks the response language from Accept-Language, defaulting to
// fallback.
func Language(fallback language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := i18n.Match(c.GetHeader("Accept-Language"), fallback)
		c.Request = c.Request.WithContext(i18n.WithLanguage(c.Request.Context(), tag))
		c.Next()
	}
}
