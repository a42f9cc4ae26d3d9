package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"review_system/internal/permission" // Requester identity
	"review_system/internal/service"    // Token verification

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const requesterKey = "requester"

// Authenticate resolves the bearer token, if any, to the requester. A request
// without an Authorization header continues as anonymous, a bad token is
// rejected with 401. The user is reloaded on every request so role changes
// and deactivation apply immediately.
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// No credentials at all means an anonymous requester
		if authHeader == "" {
			c.Set(requesterKey, permission.Anonymous())
			c.Next()
			return
		}
		// Check if the Authorization header is properly formatted
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if !service.IsAuthError(err) {
				// Storage failure, not a credentials problem
				logrus.WithError(err).Error("Failed to authenticate request")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate request"})
				return
			}
			unauthorized(c)
			return
		}
		c.Set(requesterKey, permission.FromUser(user)) // Store requester in context
		c.Set("userID", user.ID)                       // Store userID in context
		c.Next()                                       // Proceed to the next handler
	}
}

// RequesterFrom returns the requester stored by Authenticate.
func RequesterFrom(c *gin.Context) permission.Requester {
	if v, ok := c.Get(requesterKey); ok {
		if r, ok := v.(permission.Requester); ok {
			return r
		}
	}
	return permission.Anonymous()
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatus(http.StatusUnauthorized)
}
