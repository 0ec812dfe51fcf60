package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/utils"
)

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		setUserContext(c, claims.UserID)
	}
}

// WebSocketAuthMiddleware validates tokens for WebSocket upgrades. Browsers
// cannot set headers on WebSocket requests, so the token is also accepted as
// a query parameter.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Token required",
				"message": "Provide a token via the token query parameter or Authorization header",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		setUserContext(c, claims.UserID)
	}
}

// AdminMiddleware requires an authenticated user with the admin role. Must
// run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role != string(models.RoleAdmin) {
			log.Printf("🚫 Admin access denied for user %d (role=%s)", c.GetUint("user_id"), role)
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Admin access required",
				"message": "You do not have permission to access this resource",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CustomerMiddleware requires an authenticated user with the customer role.
// Must run after AuthMiddleware.
func CustomerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role != string(models.RoleCustomer) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Customer access required",
				"message": "Only customers can perform this action",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// setUserContext loads the user record and stores id, role and name in the
// request context. Aborts with 401 when the account no longer exists or has
// been deactivated.
func setUserContext(c *gin.Context, userID uint) {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "User not found",
			"message": "User associated with token not found",
		})
		c.Abort()
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Account deactivated",
			"message": "This account has been deactivated",
		})
		c.Abort()
		return
	}

	c.Set("user", user)
	c.Set("user_id", user.ID)
	c.Set("user_role", string(user.Role))
	c.Set("user_name", user.FullName)
	c.Next()
}
