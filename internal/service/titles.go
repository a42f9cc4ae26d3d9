package service

import (
	"context"
	"fmt"

	"review_system/internal/domain"
	"review_system/internal/repository"
)

// TitleFields is a partial title. Category and Genres reference slugs; an
// empty Category clears it.
type TitleFields struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

// TitleService manages titles and their cached read paths.
type TitleService struct {
	titles     *repository.TitleRepository
	categories *repository.CategoryRepository
	genres     *repository.GenreRepository
	cache      *TitleCache
}

func NewTitleService(titles *repository.TitleRepository, categories *repository.CategoryRepository, genres *repository.GenreRepository, cache *TitleCache) *TitleService {
	return &TitleService{titles: titles, categories: categories, genres: genres, cache: cache}
}

type titleList struct {
	Items []domain.Title
	Total int64
}

func (s *TitleService) List(ctx context.Context, f repository.TitleFilter, page repository.Page) ([]domain.Title, int64, error) {
	key := s.cache.key(ctx, fmt.Sprintf("list:c=%s:g=%s:n=%s:y=%d:p=%d:s=%d",
		f.Category, f.Genre, f.Name, f.Year, page.Number, page.Size))
	var cached titleList
	if s.cache.load(ctx, key, &cached) {
		return cached.Items, cached.Total, nil
	}
	items, total, err := s.titles.List(ctx, f, page)
	if err != nil {
		return nil, 0, err
	}
	s.cache.store(ctx, key, titleList{Items: items, Total: total})
	return items, total, nil
}

func (s *TitleService) Get(ctx context.Context, id uint) (*domain.Title, error) {
	key := s.cache.key(ctx, fmt.Sprintf("detail:%d", id))
	var cached domain.Title
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.cache.store(ctx, key, t)
	return t, nil
}

// Create adds a title. Name and year are required.
func (s *TitleService) Create(ctx context.Context, f TitleFields) (*domain.Title, error) {
	verr := &ValidationError{}
	if f.Name == nil || *f.Name == "" {
		verr.Add("name", "This field is required.")
	}
	if f.Year == nil {
		verr.Add("year", "This field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	t := &domain.Title{}
	genres, err := s.apply(ctx, t, f)
	if err != nil {
		return nil, err
	}
	if err := s.titles.Create(ctx, t, genres); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx)
	return s.reload(ctx, t.ID)
}

func (s *TitleService) Update(ctx context.Context, id uint, f TitleFields) (*domain.Title, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	genres, err := s.apply(ctx, t, f)
	if err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, t, genres); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx)
	return s.reload(ctx, t.ID)
}

// Delete removes the title with its reviews and their comments.
func (s *TitleService) Delete(ctx context.Context, id uint) error {
	if err := s.titles.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.cache.invalidate(ctx)
	return nil
}

func (s *TitleService) reload(ctx context.Context, id uint) (*domain.Title, error) {
	t, err := s.titles.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// apply resolves the referenced slugs and copies f onto t. The returned
// genres are nil when f leaves them untouched.
func (s *TitleService) apply(ctx context.Context, t *domain.Title, f TitleFields) ([]domain.Genre, error) {
	verr := &ValidationError{}
	var categoryID *uint
	if f.Category != nil && *f.Category != "" {
		c, err := s.categories.GetBySlug(ctx, *f.Category)
		switch {
		case repository.IsNotFound(err):
			verr.Add("category", fmt.Sprintf("Object with slug=%s does not exist.", *f.Category))
		case err != nil:
			return nil, err
		default:
			categoryID = &c.ID
		}
	}
	var genres []domain.Genre
	if f.Genres != nil {
		slugs := unique(*f.Genres)
		found, err := s.genres.GetBySlugs(ctx, slugs)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(found))
		for _, g := range found {
			known[g.Slug] = true
		}
		for _, slug := range slugs {
			if !known[slug] {
				verr.Add("genre", fmt.Sprintf("Object with slug=%s does not exist.", slug))
			}
		}
		genres = make([]domain.Genre, 0, len(found))
		genres = append(genres, found...)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if f.Name != nil {
		t.Name = *f.Name
	}
	if f.Year != nil {
		t.Year = *f.Year
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Category != nil {
		t.CategoryID = categoryID
	}
	return genres, nil
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
