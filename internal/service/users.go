package service

import (
	"context"

	"review_system/internal/domain"
	"review_system/internal/repository"
)

// UserFields is a partial user. Nil fields are left untouched.
type UserFields struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *domain.Role
}

// UserService covers user administration and the /users/me endpoints.
type UserService struct {
	users    *repository.UserRepository
	reserved []string
	cache    *TitleCache
}

func NewUserService(users *repository.UserRepository, reserved []string, cache *TitleCache) *UserService {
	if cache == nil {
		cache = NewTitleCache(nil, 0)
	}
	return &UserService{users: users, reserved: reserved, cache: cache}
}

func (s *UserService) List(ctx context.Context, search string, page repository.Page) ([]domain.User, int64, error) {
	return s.users.List(ctx, search, page)
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetByID loads the requester's own account.
func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Create adds an active user on behalf of an admin. Username and email are
// required, role defaults to user.
func (s *UserService) Create(ctx context.Context, f UserFields) (*domain.User, error) {
	verr := &ValidationError{}
	if f.Username == nil || *f.Username == "" {
		verr.Add("username", "This field is required.")
	}
	if f.Email == nil || *f.Email == "" {
		verr.Add("email", "This field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	u := &domain.User{Role: domain.RoleUser, IsActive: true}
	if err := s.apply(ctx, u, f); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, duplicateUser(err)
	}
	return u, nil
}

// Update patches the user named username. Role changes are allowed.
func (s *UserService) Update(ctx context.Context, username string, f UserFields) (*domain.User, error) {
	u, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, u, f)
}

// UpdateMe patches the requester's own account. The role is read-only
// here and any submitted value is dropped.
func (s *UserService) UpdateMe(ctx context.Context, id uint, f UserFields) (*domain.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Role = nil
	return s.save(ctx, u, f)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, u); err != nil {
		return notFound(err)
	}
	// the user's reviews went with them, so cached ratings are stale
	s.cache.invalidate(ctx)
	return nil
}

// CreateSuperuser creates an active superuser, or promotes the existing
// user with that username. It is the out-of-band path for the first admin.
func (s *UserService) CreateSuperuser(ctx context.Context, username, email string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, FieldError("role", "Must be one of user, moderator, admin.")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if repository.IsNotFound(err) {
		u = &domain.User{Role: role, IsActive: true, IsSuperuser: true}
		if err := s.apply(ctx, u, UserFields{Username: &username, Email: &email}); err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, duplicateUser(err)
		}
		return u, nil
	}
	if err != nil {
		return nil, err
	}
	u.IsActive = true
	u.IsSuperuser = true
	f := UserFields{Role: &role}
	if email != "" {
		f.Email = &email
	}
	return s.save(ctx, u, f)
}

func (s *UserService) save(ctx context.Context, u *domain.User, f UserFields) (*domain.User, error) {
	if err := s.apply(ctx, u, f); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, duplicateUser(err)
	}
	return u, nil
}

// apply validates f against the other stored users and copies it onto u.
func (s *UserService) apply(ctx context.Context, u *domain.User, f UserFields) error {
	verr := &ValidationError{}
	if f.Username != nil && *f.Username != u.Username {
		switch {
		case IsReserved(s.reserved, *f.Username):
			verr.Add("username", reservedError(*f.Username).Fields["username"][0])
		case s.taken(ctx, s.users.GetByUsername, *f.Username, u.ID):
			verr.Add("username", "A user with that username already exists.")
		}
	}
	if f.Email != nil && *f.Email != u.Email && s.taken(ctx, s.users.GetByEmail, *f.Email, u.ID) {
		verr.Add("email", "A user with that email already exists.")
	}
	if f.Role != nil && !f.Role.Valid() {
		verr.Add("role", "Must be one of user, moderator, admin.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if f.Username != nil {
		u.Username = *f.Username
	}
	if f.Email != nil {
		u.Email = *f.Email
	}
	if f.FirstName != nil {
		u.FirstName = *f.FirstName
	}
	if f.LastName != nil {
		u.LastName = *f.LastName
	}
	if f.Bio != nil {
		u.Bio = *f.Bio
	}
	if f.Role != nil {
		u.Role = *f.Role
	}
	return nil
}

// taken reports whether another user already holds value. Lookup errors
// other than not found are left to the unique index.
func (s *UserService) taken(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value string, self uint) bool {
	other, err := lookup(ctx, value)
	return err == nil && other.ID != self
}

func duplicateUser(err error) error {
	if repository.IsDuplicate(err) {
		return FieldError(NonFieldErrors, "A user with that username or email already exists.")
	}
	return err
}
