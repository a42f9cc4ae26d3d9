package api

import (
	"errors"   // Error inspection
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"review_system/internal/middleware" // Requester and denial helpers
	"review_system/internal/service"    // Service errors
	"review_system/internal/validation" // Binding error messages

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Struct validation
	"github.com/sirupsen/logrus"       // Logging library
)

// respondError writes the HTTP response matching a service error
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields) // Field errors as body
	case errors.Is(err, service.ErrNotFound):
		notFound(c)
	case errors.Is(err, service.ErrInvalidCode):
		c.Status(http.StatusBadRequest) // Nothing to tell about a rejected code
	case errors.Is(err, service.ErrPermissionDenied):
		middleware.Deny(c, middleware.RequesterFrom(c))
	default:
		// Anything else is unexpected, log it with the request id
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestIDFrom(c),
			"path":       c.Request.URL.Path,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// methodNotAllowed answers 405 for a method a route does not serve
func methodNotAllowed(allow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Allow", allow)
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	}
}

// bindJSON binds and validates the request body, answering 400 on failure.
// An empty body is validated as an empty object.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, validation.FieldErrors(err))
		return false
	}
	return true
}

// pathID parses a numeric path parameter, answering 404 when it is not one
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		notFound(c)
		return 0, false
	}
	return uint(v), true
}
