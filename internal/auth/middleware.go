package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keys set on the Gin context by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

// RequireAuth validates the bearer token and stores the claims on the
// request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// OptionalAuth stores claims when a valid bearer token is present but
// never rejects the request. Used on endpoints whose response is
// richer for signed-in users.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			token := strings.TrimPrefix(header, "Bearer ")
			if claims, err := ParseToken(secret, token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextClaims, claims)
			}
		}
		c.Next()
	}
}

// RequireStaff allows admin or sales users. Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || !claims.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admin users only. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth, or nil.
func ClaimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// UserIDFrom returns the authenticated user id, or "".
func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
