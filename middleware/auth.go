package middleware

import (
	"strings"

	"github.com/Govind-619/quickcart-payments/utils"
	"github.com/gin-gonic/gin"
)

const (
	// AuthUserIDKey holds the user_id claim of a verified caller token
	AuthUserIDKey = "authUserID"
	authRoleKey   = "authRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

func authenticate(c *gin.Context, secret string) bool {
	tokenString, ok := bearerToken(c)
	if !ok {
		utils.LogError("Missing or malformed Authorization header")
		utils.RespondWithError(c, utils.UnauthorizedError("Authorization header is required", nil))
		c.Abort()
		return false
	}

	claims, err := utils.ValidateToken(secret, tokenString)
	if err != nil {
		utils.LogError("Invalid token: %v", err)
		utils.RespondWithError(c, utils.UnauthorizedError("Invalid or expired token", err))
		c.Abort()
		return false
	}

	c.Set(AuthUserIDKey, claims.UserID)
	c.Set(authRoleKey, claims.Role)
	return true
}

// AuthMiddleware requires a valid bearer token when secret is set. With no
// secret the payment endpoints stay open.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		if !authenticate(c, secret) {
			return
		}
		c.Next()
	}
}

// AdminAuthMiddleware requires a bearer token carrying role "admin"
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			utils.LogError("Admin endpoint called without JWT_SECRET configured")
			utils.RespondWithError(c, utils.ServiceUnavailableError("Admin access is not configured", nil))
			c.Abort()
			return
		}
		if !authenticate(c, secret) {
			return
		}

		if c.GetString(authRoleKey) != utils.RoleAdmin {
			utils.LogError("Non-admin token attempted admin access: user=%s", c.GetString(AuthUserIDKey))
			utils.RespondWithError(c, utils.ForbiddenError("Admin access required", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}
