package service

import (
	"context"

	"review_system/internal/domain"
	"review_system/internal/repository"
)

// CatalogService manages categories and genres.
type CatalogService struct {
	categories *repository.CategoryRepository
	genres     *repository.GenreRepository
	cache      *TitleCache
}

func NewCatalogService(categories *repository.CategoryRepository, genres *repository.GenreRepository, cache *TitleCache) *CatalogService {
	return &CatalogService{categories: categories, genres: genres, cache: cache}
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, page repository.Page) ([]domain.Category, int64, error) {
	return s.categories.List(ctx, search, page)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*domain.Category, error) {
	c := &domain.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, duplicateSlug(err, "category")
	}
	return c, nil
}

// DeleteCategory removes the category; its titles keep existing without one.
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return notFound(err)
	}
	if err := s.categories.Delete(ctx, c); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, page repository.Page) ([]domain.Genre, int64, error) {
	return s.genres.List(ctx, search, page)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*domain.Genre, error) {
	g := &domain.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, g); err != nil {
		return nil, duplicateSlug(err, "genre")
	}
	return g, nil
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	g, err := s.genres.GetBySlug(ctx, slug)
	if err != nil {
		return notFound(err)
	}
	if err := s.genres.Delete(ctx, g); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}

func duplicateSlug(err error, kind string) error {
	if repository.IsDuplicate(err) {
		return FieldError("slug", kind+" with this slug already exists.")
	}
	return err
}
