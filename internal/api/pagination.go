package api

import (
	"strconv" // String conversion

	"review_system/internal/repository" // Page window

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	defaultPageSize = 20  // Default page size
	maxPageSize     = 100 // Largest page a client may ask for
)

// parsePage reads page and page_size, falling back to defaults on bad input
func parsePage(c *gin.Context) repository.Page {
	page := 1                   // Default page number
	pageSize := defaultPageSize // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if ps := c.Query("page_size"); ps != "" {
		// If valid, set page size
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= maxPageSize {
			pageSize = v // Set page size
		}
	}
	return repository.Page{Number: page, Size: pageSize}
}

// paginated wraps one page of results in the listing envelope
func paginated[T any](page repository.Page, total int64, results []T) gin.H {
	if results == nil {
		results = []T{} // Render an empty list, not null
	}
	// The total number of pages
	totalPages := (int(total) + page.Size - 1) / page.Size
	return gin.H{
		"count":       total,       // Total number of items
		"page":        page.Number, // Current page
		"page_size":   page.Size,   // Page size
		"total_pages": totalPages,  // Total pages
		"results":     results,     // Items of this page
	}
}
