package middleware

import (
	"strings"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/fagundes/debt-ledger/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the authenticated *entity.Session.
const SessionKey = "session"

// Authenticator resolves a bearer token into a live session.
type Authenticator interface {
	Authenticate(token string) (*entity.Session, error)
}

// AuthMiddleware creates a session authentication middleware. The token is
// read from the Authorization header, or from the access_token query
// parameter for clients that cannot set headers (EventSource).
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken)
			c.Abort()
			return
		}

		session, err := auth.Authenticate(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query("access_token")
		return token, token != ""
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetSession returns the session stored by AuthMiddleware, or nil.
func GetSession(c *gin.Context) *entity.Session {
	val, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	session, _ := val.(*entity.Session)
	return session
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			response.Error(c, apperror.ErrSessionExpired)
			c.Abort()
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.ErrForbidden)
		c.Abort()
	}
}
