package middleware

import (
	"net/http"
	"strings"

	"nexusconnect-backend/auth"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

// RequireAuth verifies the bearer token and stores the caller identity in
// the gin context. Only tokens of the given types are accepted (access by
// default).
func RequireAuth(tm *auth.TokenManager, types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			unauthorized(c, "Missing bearer token")
			return
		}

		claims, err := tm.Verify(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), types...)
		if err != nil {
			unauthorized(c, "Invalid authentication credentials")
			return
		}
		id, err := claims.Identity()
		if err != nil {
			unauthorized(c, "Invalid authentication credentials")
			return
		}

		c.Set(identityKey, id)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// IdentityFrom returns the caller set by RequireAuth
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// ClaimsFrom returns the verified token claims set by RequireAuth
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
