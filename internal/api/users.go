package api

import (
	"net/http" // HTTP status codes

	"review_system/internal/middleware" // Requester lookup
	"review_system/internal/service"    // User use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListUsersHandler returns a page of users, optionally searched by username
func ListUsersHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parsePage(c) // Pagination parameters
		list, total, err := users.List(c.Request.Context(), c.Query("search"), page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, userResponse)))
	}
}

// CreateUserHandler adds an active user
func CreateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := users.Create(c.Request.Context(), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, userResponse(user))
	}
}

// GetUserHandler returns the user named in the path
func GetUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.Get(c.Request.Context(), c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// UpdateUserHandler patches the user named in the path, role included
func UpdateUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := users.Update(c.Request.Context(), c.Param("username"), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// DeleteUserHandler removes the user named in the path with everything they wrote
func DeleteUserHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := users.Delete(c.Request.Context(), c.Param("username")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// MeHandler returns the requester's own account
func MeHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := middleware.RequesterFrom(c) // Authenticated requester
		user, err := users.GetByID(c.Request.Context(), r.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}

// UpdateMeHandler patches the requester's own account, the role stays as stored
func UpdateMeHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MeRequest // Bind JSON request to struct, role is not part of it
		if !bindJSON(c, &req) {
			return
		}
		r := middleware.RequesterFrom(c) // Authenticated requester
		user, err := users.UpdateMe(c.Request.Context(), r.UserID, req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, userResponse(user))
	}
}
