package repository

import (
	"context"
	"fmt"
	"strings"

	"review_system/internal/domain"

	"gorm.io/gorm"
)

// ratingColumn averages the scores of a title's reviews. AVG over no rows
// is NULL, which leaves Title.Rating nil.
const ratingColumn = "(SELECT AVG(reviews.score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// likeEscaper makes LIKE wildcards match literally. '!' is used as the
// escape character because a backslash needs dialect specific quoting.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// TitleFilter narrows a title listing. Zero values are ignored.
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // case-insensitive substring
	Year     int
}

type TitleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

func withRating(db *gorm.DB) *gorm.DB {
	return db.Select("titles.*, " + ratingColumn)
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.name asc")
	})
}

func (r *TitleRepository) GetByID(ctx context.Context, id uint) (*domain.Title, error) {
	var t domain.Title
	q := withRelations(withRating(r.db.WithContext(ctx).Model(&domain.Title{})))
	if err := q.Where("titles.id = ?", id).Take(&t).Error; err != nil {
		return nil, fmt.Errorf("get title %d: %w", id, err)
	}
	return &t, nil
}

// Exists reports whether a title with id exists.
func (r *TitleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Title{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check title %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *TitleRepository) filtered(ctx context.Context, f TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Title{})
	if f.Category != "" {
		q = q.Where("titles.category_id IN (?)",
			r.db.Model(&domain.Category{}).Select("id").Where("slug = ?", f.Category))
	}
	if f.Genre != "" {
		q = q.Where("titles.id IN (?)",
			r.db.Table("genre_titles").Select("genre_titles.title_id").
				Joins("JOIN genres ON genres.id = genre_titles.genre_id").
				Where("genres.slug = ?", f.Genre))
	}
	if f.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(f.Name))+"%")
	}
	if f.Year != 0 {
		q = q.Where("titles.year = ?", f.Year)
	}
	return q
}

// List returns the filtered titles with their rating, category and genres.
func (r *TitleRepository) List(ctx context.Context, f TitleFilter, page Page) ([]domain.Title, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}
	var list []domain.Title
	q := withRelations(withRating(r.filtered(ctx, f))).Order("titles.id asc")
	if err := page.apply(q).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

// Create inserts t and links it to genres.
func (r *TitleRepository) Create(ctx context.Context, t *domain.Title, genres []domain.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Genres", "Reviews").Create(t).Error; err != nil {
			return fmt.Errorf("create title: %w", err)
		}
		return linkGenres(tx, t.ID, genres)
	})
}

// Update writes the scalar columns of t. When genres is non-nil the title's
// genre links are replaced by it.
func (r *TitleRepository) Update(ctx context.Context, t *domain.Title, genres []domain.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Title{ID: t.ID}).
			Select("name", "year", "description", "category_id").
			Updates(map[string]any{
				"name":        t.Name,
				"year":        t.Year,
				"description": t.Description,
				"category_id": t.CategoryID,
			}).Error
		if err != nil {
			return fmt.Errorf("update title %d: %w", t.ID, err)
		}
		if genres == nil {
			return nil
		}
		if err := tx.Where("title_id = ?", t.ID).Delete(&domain.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink genres of title %d: %w", t.ID, err)
		}
		return linkGenres(tx, t.ID, genres)
	})
}

func linkGenres(tx *gorm.DB, titleID uint, genres []domain.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	links := make([]domain.GenreTitle, 0, len(genres))
	for _, g := range genres {
		links = append(links, domain.GenreTitle{TitleID: titleID, GenreID: g.ID})
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link genres to title %d: %w", titleID, err)
	}
	return nil
}

// Delete removes the title, its reviews and their comments.
func (r *TitleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := tx.Model(&domain.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of title %d: %w", id, err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews of title %d: %w", id, err)
		}
		if err := tx.Where("title_id = ?", id).Delete(&domain.GenreTitle{}).Error; err != nil {
			return fmt.Errorf("unlink genres of title %d: %w", id, err)
		}
		res := tx.Delete(&domain.Title{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete title %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
