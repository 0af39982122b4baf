package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithPage sends one page of a list with its paging meta.
func SuccessWithPage[T any](c *gin.Context, page shared.PageResult[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.errorResponse(c, code, message, "")
}

func (h *BaseHandler) errorResponse(c *gin.Context, code, message, field string) {
	loc := i18n.FromContext(c.Request.Context())
	c.JSON(dto.GetHTTPStatus(code), dto.NewLocalizedError(loc, code, message, field, getRequestID(c)))
}

// HandleError converts err into the error envelope. Domain errors keep their
// code; anything else is logged and reported as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if dto.GetHTTPStatus(domainErr.Code) >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Warn("Request failed",
				zap.String("code", domainErr.Code), zap.Error(err))
		}
		h.errorResponse(c, domainErr.Code, domainErr.Message, domainErr.Field)
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.errorResponse(c, shared.CodeInternal, "An unexpected error occurred", "")
}

// bindJSON decodes and validates the request body, answering 400 on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.HandleError(c, validation.FromValidator(err))
		return false
	}
	return true
}

// bindQuery decodes and validates query parameters, answering 400 on failure.
func (h *BaseHandler) bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.HandleError(c, validation.FromValidator(err))
		return false
	}
	return true
}

// bindURI decodes and validates path parameters, answering 400 on failure.
func (h *BaseHandler) bindURI(c *gin.Context, obj any) bool {
	if err := c.ShouldBindUri(obj); err != nil {
		h.HandleError(c, validation.FromValidator(err))
		return false
	}
	return true
}
