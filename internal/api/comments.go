package api

import (
	"net/http" // HTTP status codes

	"review_system/internal/middleware" // Requester lookup
	"review_system/internal/service"    // Comment use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListCommentsHandler returns a page of a review's comments
func ListCommentsHandler(comments *service.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, ok := reviewPath(c)
		if !ok {
			return
		}
		page := parsePage(c) // Pagination parameters
		list, total, err := comments.List(c.Request.Context(), titleID, reviewID, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, commentResponse)))
	}
}

// GetCommentHandler returns one comment of a review
func GetCommentHandler(comments *service.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, commentID, ok := commentPath(c)
		if !ok {
			return
		}
		cm, err := comments.Get(c.Request.Context(), titleID, reviewID, commentID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, commentResponse(cm))
	}
}

// CreateCommentHandler posts the requester's comment on a review
func CreateCommentHandler(comments *service.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, ok := reviewPath(c)
		if !ok {
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		text := "" // Missing text is reported by the service
		if req.Text != nil {
			text = *req.Text
		}
		cm, err := comments.Create(c.Request.Context(), middleware.RequesterFrom(c), titleID, reviewID, text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, commentResponse(cm))
	}
}

// UpdateCommentHandler patches a comment, author or staff only
func UpdateCommentHandler(comments *service.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, commentID, ok := commentPath(c)
		if !ok {
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		cm, err := comments.Update(c.Request.Context(), middleware.RequesterFrom(c), titleID, reviewID, commentID, req.Text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, commentResponse(cm))
	}
}

// DeleteCommentHandler removes a comment, author or staff only
func DeleteCommentHandler(comments *service.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, commentID, ok := commentPath(c)
		if !ok {
			return
		}
		if err := comments.Delete(c.Request.Context(), middleware.RequesterFrom(c), titleID, reviewID, commentID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func commentPath(c *gin.Context) (titleID, reviewID, commentID uint, ok bool) {
	if titleID, reviewID, ok = reviewPath(c); !ok {
		return 0, 0, 0, false
	}
	if commentID, ok = pathID(c, "comment_id"); !ok {
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}
