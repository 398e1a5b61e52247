package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabzii/internal/auth"
	"cabzii/internal/domain"
)

const (
	principalIDKey = "principal_id"
	principalRole  = "principal_role"
	principalPhone = "principal_mobile"
)

// RequireAuth verifies the Bearer token and enforces the expected role.
// Claims land in the gin context for the handlers downstream.
func RequireAuth(tokens auth.Manager, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		claims, err := tokens.Verify(raw)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "invalid or expired token"
			if domain.IsMissingToken(err) {
				msg = "authorization token required"
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":      msg,
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "insufficient privileges",
				"code":       "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(principalIDKey, claims.PrincipalID)
		c.Set(principalRole, claims.Role)
		c.Set(principalPhone, claims.Mobile)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// PrincipalID returns the authenticated principal's ID, empty when the route
// is unauthenticated.
func PrincipalID(c *gin.Context) string {
	return c.GetString(principalIDKey)
}

// PrincipalMobile returns the authenticated client's mobile number.
func PrincipalMobile(c *gin.Context) string {
	return c.GetString(principalPhone)
}
