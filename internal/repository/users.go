package repository

import (
	"context"
	"fmt"

	"review_system/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// List returns users ordered by username. A non-empty search matches the
// username exactly.
func (r *UserRepository) List(ctx context.Context, search string, page Page) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if search != "" {
		q = q.Where("username = ?", search)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []domain.User
	if err := page.apply(q.Order("username asc")).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update writes every column of u, zero values included.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return nil
}

// Delete removes the user together with everything they authored.
func (r *UserRepository) Delete(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authored := tx.Model(&domain.Review{}).Select("id").Where("author_id = ?", u.ID)
		if err := tx.Where("author_id = ? OR review_id IN (?)", u.ID, authored).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of user %d: %w", u.ID, err)
		}
		if err := tx.Where("author_id = ?", u.ID).Delete(&domain.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews of user %d: %w", u.ID, err)
		}
		res := tx.Delete(&domain.User{}, u.ID)
		if res.Error != nil {
			return fmt.Errorf("delete user %d: %w", u.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
