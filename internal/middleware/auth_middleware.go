package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/permit-backend/internal/errors"
	"github.com/ikkim/permit-backend/pkg/util"
)

// Context keys for the admin session
const (
	TokenKey   = "token"
	TokenIDKey = "token_id"
	RoleKey    = "role"
)

// Authenticator validates admin session tokens. service.AuthService implements it.
type Authenticator interface {
	Authenticate(token string) (*util.Claims, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is present but malformed.
func BearerToken(c *gin.Context) (token string, ok bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", true
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAdmin rejects requests without a live admin session.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := BearerToken(c)
		if !ok {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}
		if token == "" {
			// browsers cannot set headers on websocket upgrades
			token = c.Query("token")
		}
		if token == "" {
			log.Warn("Missing admin token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := m.auth.Authenticate(token)
		if err != nil {
			fields := map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			}

			switch {
			case stderrors.Is(err, util.ErrExpiredToken):
				log.Warn("Token validation failed", fields)
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Session has expired")
			case stderrors.Is(err, util.ErrInvalidToken):
				log.Warn("Token validation failed", fields)
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid session token")
			case stderrors.Is(err, util.ErrRevokedToken):
				log.Warn("Token validation failed", fields)
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Session is no longer valid")
			default:
				// the session store could not answer; the token itself may be fine
				log.Error("Session check failed", err, fields)
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Set(TokenIDKey, claims.ID)
		c.Set(RoleKey, claims.Role)

		log.Debug("Admin authenticated", map[string]interface{}{
			"token_id": claims.ID,
		})

		c.Next()
	}
}

// GetTokenID extracts the session id set by RequireAdmin.
func GetTokenID(c *gin.Context) (string, bool) {
	id, exists := c.Get(TokenIDKey)
	if !exists {
		return "", false
	}
	return id.(string), true
}
