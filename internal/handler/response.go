package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"idsync/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// HTTPStatus maps a status class to its HTTP status code.
func HTTPStatus(class domain.StatusClass) int {
	switch class {
	case domain.StatusOK:
		return http.StatusOK
	case domain.StatusUnauthorized:
		return http.StatusUnauthorized
	case domain.StatusUnprocessable:
		return http.StatusUnprocessableEntity
	case domain.StatusServiceUnavailable:
		return http.StatusServiceUnavailable
	case domain.StatusBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondFailure renders a pipeline failure. Only the caller-safe message is
// written; the cause stays in the server logs.
func RespondFailure(c *gin.Context, failure *domain.Failure, class domain.StatusClass) {
	if failure == nil {
		failure = domain.NewFailure(domain.FailureInternal, nil)
		class = domain.StatusInternal
	}
	status := HTTPStatus(class)
	if status == http.StatusOK {
		status = http.StatusInternalServerError
	}

	apiErr := &APIError{Code: failure.Code(), Message: failure.Message}
	if len(failure.Fields) > 0 {
		apiErr.Details = map[string]interface{}{"missing_fields": failure.Fields}
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
