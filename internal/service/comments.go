package service

import (
	"context"
	"net/http"

	"review_system/internal/domain"
	"review_system/internal/permission"
	"review_system/internal/repository"
)

// CommentService manages the comments of a review. Every call first checks
// that the review belongs to the title in the path.
type CommentService struct {
	reviews  *repository.ReviewRepository
	comments *repository.CommentRepository
}

func NewCommentService(reviews *repository.ReviewRepository, comments *repository.CommentRepository) *CommentService {
	return &CommentService{reviews: reviews, comments: comments}
}

func (s *CommentService) review(ctx context.Context, titleID, reviewID uint) (*domain.Review, error) {
	rv, err := s.reviews.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID uint, page repository.Page) ([]domain.Comment, int64, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListByReview(ctx, reviewID, page)
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*domain.Comment, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c, err := s.comments.Get(ctx, reviewID, commentID)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *CommentService) Create(ctx context.Context, r permission.Requester, titleID, reviewID uint, text string) (*domain.Comment, error) {
	if _, err := s.review(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, FieldError("text", "This field is required.")
	}
	c := &domain.Comment{ReviewID: reviewID, AuthorID: r.UserID, Text: text}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	c.Author = domain.User{ID: r.UserID, Username: r.Username}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, r permission.Requester, titleID, reviewID, commentID uint, text *string) (*domain.Comment, error) {
	c, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(permission.ReadOpenWriteAuthorOrStaff, http.MethodPatch, r, c); err != nil {
		return nil, err
	}
	if text == nil {
		return c, nil
	}
	if *text == "" {
		return nil, FieldError("text", "This field may not be blank.")
	}
	c.Text = *text
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, r permission.Requester, titleID, reviewID, commentID uint) error {
	c, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorize(permission.ReadOpenWriteAuthorOrStaff, http.MethodDelete, r, c); err != nil {
		return err
	}
	return s.comments.Delete(ctx, c)
}
