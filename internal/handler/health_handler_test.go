package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"idsync/internal/handler"
	"idsync/mocks"
)

func serveHealth(route string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, route, http.NoBody)
	h(c)
	return w
}

func TestHealthHandler_Health(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockUserRepo))

	w := serveHealth("/api/v1/health", h.Health)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"OK"}`, w.Body.String())
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockUserRepo))

	w := serveHealth("/healthz", h.Liveness)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	repo.On("Ping", mock.Anything).Return(nil).Once()
	repo.On("Ping", mock.Anything).Return(errors.New("dial tcp: refused")).Once()
	h := handler.NewHealthHandler(repo)

	w := serveHealth("/readyz", h.Readiness)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serveHealth("/readyz", h.Readiness)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
	repo.AssertExpectations(t)
}
