package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the staff password for a session token
// POST /api/v1/admin/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.RespondWithBindingError(c, err)
		return
	}

	session, err := ctrl.authService.Login(req.Password)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrPasswordRequired):
			errors.BadRequest(c, errors.ValidationRequired, "Password is required")
		case stderrors.Is(err, service.ErrInvalidPassword):
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthInvalidCredentials, "Invalid password")
		default:
			log.Error("Admin login failed", err, nil)
			errors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Authentication successful",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// Logout revokes the caller's session token
// POST /api/v1/admin/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := c.GetString(middleware.TokenKey)
	if err := ctrl.authService.Logout(token); err != nil {
		log.Error("Admin logout failed", err, nil)
		errors.InternalError(c, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
