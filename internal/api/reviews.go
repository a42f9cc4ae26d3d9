package api

import (
	"net/http" // HTTP status codes

	"review_system/internal/middleware" // Requester lookup
	"review_system/internal/service"    // Review use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListReviewsHandler returns a page of a title's reviews
func ListReviewsHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, ok := pathID(c, "title_id")
		if !ok {
			return
		}
		page := parsePage(c) // Pagination parameters
		list, total, err := reviews.List(c.Request.Context(), titleID, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, reviewResponse)))
	}
}

// GetReviewHandler returns one review of a title
func GetReviewHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, ok := reviewPath(c)
		if !ok {
			return
		}
		rv, err := reviews.Get(c.Request.Context(), titleID, reviewID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviewResponse(rv))
	}
}

// CreateReviewHandler posts the requester's review of a title
func CreateReviewHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, ok := pathID(c, "title_id")
		if !ok {
			return
		}
		var req ReviewRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		// Author and title come from the request context, never the body
		rv, err := reviews.Create(c.Request.Context(), middleware.RequesterFrom(c), titleID,
			service.ReviewFields{Text: req.Text, Score: req.Score})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, reviewResponse(rv))
	}
}

// UpdateReviewHandler patches a review, author or staff only
func UpdateReviewHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, ok := reviewPath(c)
		if !ok {
			return
		}
		var req ReviewRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		rv, err := reviews.Update(c.Request.Context(), middleware.RequesterFrom(c), titleID, reviewID,
			service.ReviewFields{Text: req.Text, Score: req.Score})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviewResponse(rv))
	}
}

// DeleteReviewHandler removes a review and its comments, author or staff only
func DeleteReviewHandler(reviews *service.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titleID, reviewID, ok := reviewPath(c)
		if !ok {
			return
		}
		if err := reviews.Delete(c.Request.Context(), middleware.RequesterFrom(c), titleID, reviewID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func reviewPath(c *gin.Context) (titleID, reviewID uint, ok bool) {
	if titleID, ok = pathID(c, "title_id"); !ok {
		return 0, 0, false
	}
	if reviewID, ok = pathID(c, "review_id"); !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
