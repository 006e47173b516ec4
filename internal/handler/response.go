package handler

import (
	"net/http"

	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// StatusFromError maps the application error taxonomy to HTTP codes.
// Storage faults surface as a plain 500; the cause stays in the log.
func StatusFromError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns a caller-safe message for an error. Internal
// faults are flattened so driver detail never reaches presentation code.
func ErrorMessage(err error) string {
	if StatusFromError(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
