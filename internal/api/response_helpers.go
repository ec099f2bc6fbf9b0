// internal/api/response_helpers.go
package api

import (
	"net/http"
	"time"

	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/utils"
	"github.com/gin-gonic/gin"
)

// ResponseHelper builds the standard API envelope
type ResponseHelper struct{}

// NewResponseHelper creates a response helper
func NewResponseHelper() *ResponseHelper {
	return &ResponseHelper{}
}

// Success sends a 200 response
func (rh *ResponseHelper) Success(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	}

	c.JSON(http.StatusOK, response)
}

// Created sends a 201 response
func (rh *ResponseHelper) Created(c *gin.Context, data interface{}, message ...string) {
	response := &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "resource created"
	}

	c.JSON(http.StatusCreated, response)
}

// Error sends an error response with the given status and code
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, errorCode, message string, details ...string) {
	apiError := &APIError{
		Code:    errorCode,
		Message: message,
	}

	if len(details) > 0 {
		apiError.Details = details[0]
	}

	response := &APIResponse{
		Success:   false,
		Error:     apiError,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	}

	c.JSON(statusCode, response)
}

// BadRequest sends a 400 error response
func (rh *ResponseHelper) BadRequest(c *gin.Context, message string, details ...string) {
	rh.Error(c, http.StatusBadRequest, ErrorBadRequest, message, details...)
}

// NotFound sends a 404 error response
func (rh *ResponseHelper) NotFound(c *gin.Context, message string, details ...string) {
	rh.Error(c, http.StatusNotFound, ErrorNotFound, message, details...)
}

// InternalError sends a 500 error response
func (rh *ResponseHelper) InternalError(c *gin.Context, message string, details ...string) {
	rh.Error(c, http.StatusInternalServerError, ErrorInternalError, message, details...)
}

// AppError maps a typed application error to its HTTP status and code.
// Non-AppError values fall through to a 500.
func (rh *ResponseHelper) AppError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		rh.InternalError(c, "unexpected error", err.Error())
		return
	}

	utils.NewPipelineMetrics().RecordError(string(appErr.Type), c.FullPath())

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidCount:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound,
		apperrors.ErrorTypeUnknownCategory,
		apperrors.ErrorTypeUnknownComponent:
		status = http.StatusNotFound
	}

	apiError := &APIError{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if appErr.Value != "" {
		apiError.Value = appErr.Value
	}
	if len(appErr.Valid) > 0 {
		apiError.Valid = appErr.Valid
	}

	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     apiError,
		Timestamp: time.Now(),
		RequestID: rh.getRequestID(c),
	})
}

// getRequestID returns the request ID set by the middleware
func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	if requestID := c.GetString("request_id"); requestID != "" {
		return requestID
	}
	return ""
}
