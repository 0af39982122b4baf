package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// abortWithError stops the chain with the standard error envelope.
func abortWithError(c *gin.Context, code, message string) {
	loc := i18n.FromContext(c.Request.Context())
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewLocalizedError(loc, code, message, "", GetRequestID(c)))
}

// NoRoute answers unknown paths with the error envelope.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, dto.ErrCodeRouteNotFound, "Route not found")
	}
}

// NoMethod answers known paths called with the wrong method.
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		abortWithError(c, dto.ErrCodeMethodNotAllowed, "Method not allowed")
	}
}
