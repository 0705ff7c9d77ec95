package utils

import (
	"errors"
	"net/http"
	"strings"

	"cafehub/model"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the caller and stores identity and role in
// the gin context. It does not decide authorization; handlers call
// RequireRole for that.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
			c.Abort()
			return
		}

		userID, role, err := extractIdentity(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", role)

		c.Next()
	}
}

// RequireRole compares the authenticated caller's role against the role a
// handler demands. Handlers call it first and stop on false.
func RequireRole(c *gin.Context, required model.UserRole) bool {
	role, exists := c.Get("user_role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return false
	}
	if model.UserRole(role.(string)) != required {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: insufficient role"})
		return false
	}
	return true
}

// CallerID returns the authenticated user's id, failing the request with
// 401 when the middleware did not run.
func CallerID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized access"})
		return 0, false
	}
	return userID.(uint), true
}

func extractIdentity(authHeader string) (uint, string, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", errors.New("invalid token format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return 0, "", err
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, "", errors.New("id not found or invalid type")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return 0, "", errors.New("role not found in token")
	}

	return uint(idFloat), role, nil
}
