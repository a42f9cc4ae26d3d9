package middleware

import (
	"net/http" // HTTP status codes

	"review_system/internal/permission" // Authorization policies

	"github.com/gin-gonic/gin" // Gin web framework
)

// Authorize applies the endpoint check of policy to the requester
func Authorize(policy permission.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := RequesterFrom(c) // Requester set by Authenticate
		// Check the endpoint permission before any object is loaded
		if !policy.HasPermission(c.Request.Method, r) {
			Deny(c, r)
			return
		}
		c.Next() // Proceed to the next handler
	}
}

// Deny aborts with 401 for anonymous requesters and 403 otherwise
func Deny(c *gin.Context, r permission.Requester) {
	if !r.Authenticated {
		unauthorized(c)
		return
	}
	c.AbortWithStatus(http.StatusForbidden)
}
