package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "staff-only"

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	authService, err := service.NewAuthService(testAdminPassword, "test-secret", time.Hour, nil)
	require.NoError(t, err)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.New()
	router.POST("/admin/login", ctrl.Login)
	router.POST("/admin/logout", authMiddleware.RequireAdmin(), ctrl.Logout)
	router.GET("/admin/ping", authMiddleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router, authService
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := performJSON(router, http.MethodPost, "/admin/login", LoginRequest{Password: testAdminPassword})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func withToken(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := performJSON(router, http.MethodPost, "/admin/login", LoginRequest{Password: testAdminPassword})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Authentication successful", response["message"])
	assert.NotEmpty(t, response["token"])
	assert.NotEmpty(t, response["expiresAt"])
}

func TestAuthController_Login_Rejections(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name     string
		password string
		status   int
		message  string
	}{
		{"missing password", "", http.StatusBadRequest, "Password is required"},
		{"wrong password", "guess", http.StatusUnauthorized, "Invalid password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/admin/login", LoginRequest{Password: tt.password})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["message"])
		})
	}
}

func TestAuthController_LogoutRevokesToken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)
	token := login(t, router)

	assert.Equal(t, http.StatusNoContent, withToken(router, http.MethodGet, "/admin/ping", token).Code)

	w := withToken(router, http.MethodPost, "/admin/logout", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	w = withToken(router, http.MethodGet, "/admin/ping", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_REVOKED", decode(t, w)["error"])
}

func TestAuthController_Logout_RequiresSession(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := performJSON(router, http.MethodPost, "/admin/logout", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
