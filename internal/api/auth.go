package api

import (
	"net/http" // HTTP status codes

	"review_system/internal/service" // Registration flow

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupHandler registers a user and mails a confirmation code
func SignupHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		// Create or reuse the pending user and send the code
		user, err := auth.Signup(c.Request.Context(), req.Username, req.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		// Echo the registered pair
		c.JSON(http.StatusOK, SignupRequest{Email: user.Email, Username: user.Username})
	}
}

// TokenHandler exchanges a confirmation code for a JWT token
func TokenHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		// Check the code and activate the user
		token, err := auth.IssueToken(c.Request.Context(), req.Username, req.ConfirmationCode)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, TokenResponse{Token: token})
	}
}
