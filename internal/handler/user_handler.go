package handler

import (
	"github.com/gin-gonic/gin"

	"idsync/internal/service"
)

// UserHandler handles user setup endpoints.
type UserHandler struct {
	authService service.AuthenticationService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService service.AuthenticationService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Setup handles POST /api/v1/users/setup
// @Summary Set up the current user
// @Description Verify the bearer token with the identity provider and create or update the matching local user
// @Tags users
// @Produce json
// @Success 200 {object} Response{data=SetupResponse} "User set up"
// @Failure 401 {object} ErrorResponseBody "Missing, malformed or rejected token"
// @Failure 422 {object} ErrorResponseBody "Identity could not be reconciled"
// @Failure 502 {object} ErrorResponseBody "Identity provider error"
// @Failure 503 {object} ErrorResponseBody "Identity provider unreachable"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Security BearerAuth
// @Router /users/setup [post]
func (h *UserHandler) Setup(c *gin.Context) {
	out := h.authService.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if !out.OK() {
		RespondFailure(c, out.Failure, out.Status)
		return
	}

	RespondOK(c, SetupResponse{User: out.User, IsNewUser: out.IsNewUser})
}
