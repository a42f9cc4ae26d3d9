package repository

import (
	"context"
	"fmt"

	"review_system/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListByTitle returns the reviews of a title, oldest first.
func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID uint, page Page) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("title_id = ?", titleID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews of title %d: %w", titleID, err)
	}
	var list []domain.Review
	if err := page.apply(q.Preload("Author").Order("pub_date asc, id asc")).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews of title %d: %w", titleID, err)
	}
	return list, total, nil
}

// Get returns a review only if it belongs to titleID.
func (r *ReviewRepository) Get(ctx context.Context, titleID, reviewID uint) (*domain.Review, error) {
	var rv domain.Review
	err := r.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND title_id = ?", reviewID, titleID).
		First(&rv).Error
	if err != nil {
		return nil, fmt.Errorf("get review %d of title %d: %w", reviewID, titleID, err)
	}
	return &rv, nil
}

// ExistsByAuthor reports whether authorID already reviewed titleID.
func (r *ReviewRepository) ExistsByAuthor(ctx context.Context, titleID, authorID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check review of title %d: %w", titleID, err)
	}
	return n > 0, nil
}

// Create inserts rv. The (author, title) unique index rejects duplicates,
// check with IsDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Comments").Create(rv).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// Update writes the text and score of rv.
func (r *ReviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	err := r.db.WithContext(ctx).Model(&domain.Review{ID: rv.ID}).
		Select("text", "score").
		Updates(map[string]any{"text": rv.Text, "score": rv.Score}).Error
	if err != nil {
		return fmt.Errorf("update review %d: %w", rv.ID, err)
	}
	return nil
}

// Delete removes the review and its comments.
func (r *ReviewRepository) Delete(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", rv.ID).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of review %d: %w", rv.ID, err)
		}
		if err := tx.Delete(&domain.Review{}, rv.ID).Error; err != nil {
			return fmt.Errorf("delete review %d: %w", rv.ID, err)
		}
		return nil
	})
}
