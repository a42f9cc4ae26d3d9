package repository

import (
	"context"
	"fmt"

	"review_system/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListByReview returns the comments of a review, oldest first.
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID uint, page Page) ([]domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("review_id = ?", reviewID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments of review %d: %w", reviewID, err)
	}
	var list []domain.Comment
	if err := page.apply(q.Preload("Author").Order("pub_date asc, id asc")).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list comments of review %d: %w", reviewID, err)
	}
	return list, total, nil
}

// Get returns a comment only if it belongs to reviewID.
func (r *CommentRepository) Get(ctx context.Context, reviewID, commentID uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND review_id = ?", commentID, reviewID).
		First(&c).Error
	if err != nil {
		return nil, fmt.Errorf("get comment %d of review %d: %w", commentID, reviewID, err)
	}
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) error {
	err := r.db.WithContext(ctx).Model(&domain.Comment{ID: c.ID}).Update("text", c.Text).Error
	if err != nil {
		return fmt.Errorf("update comment %d: %w", c.ID, err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, c *domain.Comment) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Comment{}, c.ID).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", c.ID, err)
	}
	return nil
}
