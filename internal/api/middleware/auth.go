package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/stoneyard/remnant-portal/internal/api/shared/errors"
	"github.com/stoneyard/remnant-portal/internal/identity"
	"github.com/stoneyard/remnant-portal/internal/logger"
	"github.com/stoneyard/remnant-portal/internal/store"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "request_id"
)

// Principal is a verified identity with its local role/owner mapping
type Principal struct {
	UserID    string
	Email     string
	Role      string
	OwnerName string
}

// SessionConfig holds session gate configuration
type SessionConfig struct {
	// CookieName is the cookie carrying the provider session token
	CookieName string
}

// Session returns a gin middleware that extracts the session cookie, resolves
// it against the identity provider and attaches the role/owner mapping.
// Missing or invalid token aborts with 401; an identity with no mapping
// aborts with 403.
func Session(cfg SessionConfig, resolver identity.Resolver, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Not logged in"))
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Invalid or expired session"))
			return
		}

		mapping, err := st.GetUserOwner(c.Request.Context(), user.ID)
		if err != nil {
			logger.Error(err, zap.String("user_id", user.ID))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				apierrors.NewInternalError("Failed to resolve user role"))
			return
		}
		if mapping == nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.NewForbiddenError("No role found for user"))
			return
		}

		c.Set(string(principalKey), &Principal{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      mapping.Role,
			OwnerName: mapping.OwnerName,
		})
		c.Next()
	}
}

// RequireRole returns a gin middleware that restricts a route to principals
// with the given role. Must run after Session.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if principal == nil || principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierrors.NewForbiddenError("Insufficient role"))
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the principal attached by Session, or nil
func PrincipalFromContext(c *gin.Context) *Principal {
	value, exists := c.Get(string(principalKey))
	if !exists {
		return nil
	}
	principal, ok := value.(*Principal)
	if !ok {
		return nil
	}
	return principal
}
