package repository

import (
	"context"
	"fmt"

	"review_system/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns categories ordered by name. A non-empty search matches the
// name exactly.
func (r *CategoryRepository) List(ctx context.Context, search string, page Page) ([]domain.Category, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{})
	if search != "" {
		q = q.Where("name = ?", search)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}
	var list []domain.Category
	if err := page.apply(q.Order("name asc, id asc")).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return list, total, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Delete removes the category and detaches it from its titles.
func (r *CategoryRepository) Delete(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Title{}).Where("category_id = ?", c.ID).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach category %q: %w", c.Slug, err)
		}
		if err := tx.Delete(&domain.Category{}, c.ID).Error; err != nil {
			return fmt.Errorf("delete category %q: %w", c.Slug, err)
		}
		return nil
	})
}

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// List returns genres ordered by name. A non-empty search matches the name
// exactly.
func (r *GenreRepository) List(ctx context.Context, search string, page Page) ([]domain.Genre, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Genre{})
	if search != "" {
		q = q.Where("name = ?", search)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}
	var list []domain.Genre
	if err := page.apply(q.Order("name asc, id asc")).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list genres: %w", err)
	}
	return list, total, nil
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	var g domain.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, fmt.Errorf("get genre %q: %w", slug, err)
	}
	return &g, nil
}

// GetBySlugs returns the genres matching slugs. Unknown slugs are skipped,
// callers compare lengths to detect them.
func (r *GenreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	var list []domain.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by slug: %w", err)
	}
	return list, nil
}

func (r *GenreRepository) Create(ctx context.Context, g *domain.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

// Delete removes the genre and its links to titles.
func (r *GenreRepository) Delete(ctx context.Context, g *domain.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", g.ID).Delete(&domain.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink genre %q: %w", g.Slug, err)
		}
		if err := tx.Delete(&domain.Genre{}, g.ID).Error; err != nil {
			return fmt.Errorf("delete genre %q: %w", g.Slug, err)
		}
		return nil
	})
}
