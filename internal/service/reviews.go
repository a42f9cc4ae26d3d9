package service

import (
	"context"
	"net/http"

	"review_system/internal/domain"
	"review_system/internal/permission"
	"review_system/internal/repository"
)

const duplicateReviewMsg = "You have already reviewed this title."

// ReviewFields is a partial review.
type ReviewFields struct {
	Text  *string
	Score *int
}

// ReviewService manages the reviews of a title.
type ReviewService struct {
	titles  *repository.TitleRepository
	reviews *repository.ReviewRepository
	cache   *TitleCache
}

func NewReviewService(titles *repository.TitleRepository, reviews *repository.ReviewRepository, cache *TitleCache) *ReviewService {
	return &ReviewService{titles: titles, reviews: reviews, cache: cache}
}

func (s *ReviewService) requireTitle(ctx context.Context, titleID uint) error {
	ok, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewService) List(ctx context.Context, titleID uint, page repository.Page) ([]domain.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page)
}

func (s *ReviewService) Get(ctx context.Context, titleID, reviewID uint) (*domain.Review, error) {
	rv, err := s.reviews.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound(err)
	}
	return rv, nil
}

// Create stores a review of the title by the requester. A second review of
// the same title by the same author is rejected, including when two
// requests race past the pre-check.
func (s *ReviewService) Create(ctx context.Context, r permission.Requester, titleID uint, f ReviewFields) (*domain.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	verr := &ValidationError{}
	if f.Text == nil || *f.Text == "" {
		verr.Add("text", "This field is required.")
	}
	if f.Score == nil {
		verr.Add("score", "This field is required.")
	} else if *f.Score < 1 || *f.Score > 10 {
		verr.Add("score", "Ensure this value is between 1 and 10.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	exists, err := s.reviews.ExistsByAuthor(ctx, titleID, r.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, FieldError(NonFieldErrors, duplicateReviewMsg)
	}

	rv := &domain.Review{TitleID: titleID, AuthorID: r.UserID, Text: *f.Text, Score: *f.Score}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsDuplicate(err) {
			return nil, FieldError(NonFieldErrors, duplicateReviewMsg)
		}
		return nil, err
	}
	rv.Author = domain.User{ID: r.UserID, Username: r.Username}
	s.cache.invalidate(ctx)
	return rv, nil
}

// Update patches a review. Only its author and staff may do so.
func (s *ReviewService) Update(ctx context.Context, r permission.Requester, titleID, reviewID uint, f ReviewFields) (*domain.Review, error) {
	rv, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(permission.ReadOpenWriteAuthorOrStaff, http.MethodPatch, r, rv); err != nil {
		return nil, err
	}
	verr := &ValidationError{}
	if f.Text != nil && *f.Text == "" {
		verr.Add("text", "This field may not be blank.")
	}
	if f.Score != nil && (*f.Score < 1 || *f.Score > 10) {
		verr.Add("score", "Ensure this value is between 1 and 10.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if f.Text != nil {
		rv.Text = *f.Text
	}
	if f.Score != nil {
		rv.Score = *f.Score
	}
	if err := s.reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	s.cache.invalidate(ctx)
	return rv, nil
}

// Delete removes a review and its comments.
func (s *ReviewService) Delete(ctx context.Context, r permission.Requester, titleID, reviewID uint) error {
	rv, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorize(permission.ReadOpenWriteAuthorOrStaff, http.MethodDelete, r, rv); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, rv); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
