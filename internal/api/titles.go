package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"review_system/internal/repository" // Title filters
	"review_system/internal/service"    // Title use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListTitlesHandler returns a page of titles filtered by category, genre, name and year
func ListTitlesHandler(titles *service.TitleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.TitleFilter{
			Category: c.Query("category"), // Category slug
			Genre:    c.Query("genre"),    // Genre slug
			Name:     c.Query("name"),     // Name substring
		}
		if y := c.Query("year"); y != "" {
			// A year that is not a number is a field error
			v, err := strconv.Atoi(y)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"year": []string{"Enter a whole number."}})
				return
			}
			filter.Year = v
		}
		page := parsePage(c) // Pagination parameters
		list, total, err := titles.List(c.Request.Context(), filter, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, titleResponse)))
	}
}

// GetTitleHandler returns one title with its rating
func GetTitleHandler(titles *service.TitleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "title_id")
		if !ok {
			return
		}
		title, err := titles.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, titleResponse(title))
	}
}

// CreateTitleHandler adds a title and returns its read representation
func CreateTitleHandler(titles *service.TitleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TitleRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		title, err := titles.Create(c.Request.Context(), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, titleResponse(title))
	}
}

// UpdateTitleHandler patches a title
func UpdateTitleHandler(titles *service.TitleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "title_id")
		if !ok {
			return
		}
		var req TitleRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		title, err := titles.Update(c.Request.Context(), id, req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, titleResponse(title))
	}
}

// DeleteTitleHandler removes a title with its reviews and comments
func DeleteTitleHandler(titles *service.TitleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "title_id")
		if !ok {
			return
		}
		if err := titles.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
