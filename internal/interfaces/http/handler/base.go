package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/finplan/backend/internal/domain/shared"
	"github.com/finplan/backend/internal/interfaces/http/dto"
	"github.com/finplan/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// BindJSON decodes and validates the request body into obj. On failure it
// writes the error response and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	switch {
	case middleware.IsBodyTooLarge(err):
		middleware.AbortRequestTooLarge(c)
	case errors.As(err, &validationErrs):
		h.ValidationError(c, middleware.ValidationDetails(validationErrs))
	case errors.Is(err, io.EOF):
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body is required")
	default:
		_ = c.Error(err)
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON for this endpoint")
	}
	return false
}

// HandleError converts an error returned by the planning service to an HTTP
// response. Field-level domain errors, including joined ones, become
// validation details; anything that is not a domain error answers 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	domainErrs := collectDomainErrors(err)
	if len(domainErrs) == 0 {
		_ = c.Error(err)
		h.InternalError(c, "An unexpected error occurred")
		return
	}

	first := domainErrs[0]
	code := dto.NormalizeErrorCode(first.Code)
	message := first.Message
	if len(domainErrs) > 1 || first.Field != "" {
		message = shared.ErrInvalidInput.Message
	}

	resp := dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c))
	for _, de := range domainErrs {
		if de.Field != "" {
			resp.Error.Details = append(resp.Error.Details, dto.ValidationDetail{
				Field:   de.Field,
				Message: de.Message,
			})
		}
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}

// collectDomainErrors walks wrapped and joined errors, returning every
// DomainError in order
func collectDomainErrors(err error) []*shared.DomainError {
	var found []*shared.DomainError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if de, ok := e.(*shared.DomainError); ok {
			found = append(found, de)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return found
}
