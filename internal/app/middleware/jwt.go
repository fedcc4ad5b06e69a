package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

const (
	// IdentityKey holds the models.Identity of the signed-in user
	IdentityKey = "identity"
	// TokenKey holds the raw bearer token
	TokenKey = "token"
)

// ExtractToken strips the "Bearer " prefix of an Authorization header
func ExtractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

// Authentication rejects requests without a valid, unrevoked session token
func Authentication(auth services.InterfaceAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			Logger.Warning("rejected token on %s: %v", c.FullPath(), err)
			response.Unauthorized(c)
			return
		}

		c.Set(IdentityKey, *claims.Identity())
		c.Set(TokenKey, tokenString)
		c.Next()
	}
}

// RequireRole lets through users whose role is one of roles. Use after Authentication.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			response.Unauthorized(c)
			return
		}
		for _, r := range roles {
			if identity.Role == r {
				c.Next()
				return
			}
		}
		response.Fail(c, code.ErrForbidden, nil)
		c.Abort()
	}
}

// CurrentIdentity returns the user set by Authentication
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
