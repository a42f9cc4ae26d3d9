package api

import (
	"context"  // Request context
	"net/http" // HTTP status codes

	"review_system/internal/domain"  // Importing domain models
	"review_system/internal/service" // Catalog use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListCategoriesHandler returns a page of categories, optionally searched by name
func ListCategoriesHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parsePage(c) // Pagination parameters
		list, total, err := catalog.ListCategories(c.Request.Context(), c.Query("search"), page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, func(cat *domain.Category) SlugResponse {
			return SlugResponse{Name: cat.Name, Slug: cat.Slug}
		})))
	}
}

// CreateCategoryHandler adds a category
func CreateCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return createSlugged(func(ctx context.Context, name, slug string) error {
		_, err := catalog.CreateCategory(ctx, name, slug)
		return err
	})
}

// DeleteCategoryHandler removes the category named by slug
func DeleteCategoryHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return deleteSlugged(catalog.DeleteCategory)
}

// ListGenresHandler returns a page of genres, optionally searched by name
func ListGenresHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parsePage(c) // Pagination parameters
		list, total, err := catalog.ListGenres(c.Request.Context(), c.Query("search"), page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, paginated(page, total, mapSlice(list, func(g *domain.Genre) SlugResponse {
			return SlugResponse{Name: g.Name, Slug: g.Slug}
		})))
	}
}

// CreateGenreHandler adds a genre
func CreateGenreHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return createSlugged(func(ctx context.Context, name, slug string) error {
		_, err := catalog.CreateGenre(ctx, name, slug)
		return err
	})
}

// DeleteGenreHandler removes the genre named by slug
func DeleteGenreHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return deleteSlugged(catalog.DeleteGenre)
}

func createSlugged(create func(ctx context.Context, name, slug string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SlugRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		if err := create(c.Request.Context(), req.Name, req.Slug); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, SlugResponse(req))
	}
}

func deleteSlugged(remove func(ctx context.Context, slug string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := remove(c.Request.Context(), c.Param("slug")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
