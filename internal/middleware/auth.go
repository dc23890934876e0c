package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/services"
)

// ContextUserIDKey is the gin context key the auth middleware stores
// the authenticated user's uuid.UUID under.
const ContextUserIDKey = "auth_user_id"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	adminIDs    map[uuid.UUID]bool
}

func NewAuthMiddleware(baseLog *logger.Logger, authService services.AuthService, adminIDs []uuid.UUID) *AuthMiddleware {
	admins := make(map[uuid.UUID]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &AuthMiddleware{
		log:         baseLog.With("middleware", "AuthMiddleware"),
		authService: authService,
		adminIDs:    admins,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := am.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid token"})
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but
// lets anonymous requests through.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := am.authenticate(c); err == nil {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ContextUserIDKey)
		userID, isID := v.(uuid.UUID)
		if !ok || !isID || !am.adminIDs[userID] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) authenticate(c *gin.Context) (uuid.UUID, error) {
	token := extractToken(c)
	if token == "" {
		return uuid.Nil, errMissingToken
	}
	userID, err := am.authService.ValidateToken(token)
	if err != nil {
		am.log.Debug("token rejected", "error", err)
		return uuid.Nil, err
	}
	return userID, nil
}

var errMissingToken = &tokenError{"missing token"}

type tokenError struct{ msg string }

func (e *tokenError) Error() string { return e.msg }

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return c.Query("token")
}
