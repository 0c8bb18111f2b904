package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mealsub/internal/infrastructure/auth"
	"mealsub/internal/shared/constants"
	"mealsub/internal/shared/logger"
	"mealsub/internal/shared/utils"
	"mealsub/internal/shared/utils/logutil"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer access token and stores the caller's id,
// role and phone verification flag on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		token := strings.TrimSpace(parts[1])
		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token",
				"error", err,
				"token_prefix", logutil.TruncateForLog(token, 8),
				"path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		c.Set(constants.ContextKeyPhoneVerified, claims.PhoneVerified)

		c.Next()
	}
}
