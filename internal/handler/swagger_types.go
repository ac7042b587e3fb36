package handler

import "idsync/internal/domain"

// Swagger type definitions for API documentation.

// SetupResponse is the payload of a successful user setup.
type SetupResponse struct {
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user" example:"true"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"OK"`
}

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
