package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/auth"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate resolves the bearer token to a live session and stores it
// in the request context. Denials are logged operationally but never
// produce audit entries.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid authorization format",
			})
			return
		}

		sess, ok := m.authService.Session(parts[1])
		if !ok {
			log.Warn().
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Msg("rejected expired or unknown session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid or expired session",
			})
			return
		}

		c.Set(ContextSession, sess)
		c.Next()
	}
}

// SessionFromContext returns the session set by Authenticate.
func SessionFromContext(c *gin.Context) (*model.Session, bool) {
	v, exists := c.Get(ContextSession)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*model.Session)
	return sess, ok
}
