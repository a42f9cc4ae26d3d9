package api

import (
	"time" // Timestamps

	"review_system/internal/domain"  // Importing domain models
	"review_system/internal/service" // Service input types
)

// SignupRequest starts the registration flow
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`       // Address receiving the code
	Username string `json:"username" binding:"required,max=150,username"` // Requested username
}

// TokenRequest exchanges a confirmation code for an access token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`          // Registered username
	ConfirmationCode string `json:"confirmation_code" binding:"required"` // Code from the mail
}

// TokenResponse carries the access token
type TokenResponse struct {
	Token string `json:"token"` // JWT token
}

// UserRequest is a full or partial user payload
type UserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`       // Unique username
	Email     *string `json:"email" binding:"omitempty,email,max=254"`             // Unique email
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`              // First name
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`               // Last name
	Bio       *string `json:"bio"`                                                 // Biography
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"` // Role
}

func (r UserRequest) fields() service.UserFields {
	f := service.UserFields{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		f.Role = &role
	}
	return f
}

// MeRequest is a partial update of the requester's own account. It has no
// role field, so a submitted role is dropped while decoding.
type MeRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"` // Unique username
	Email     *string `json:"email" binding:"omitempty,email,max=254"`       // Unique email
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`        // First name
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`         // Last name
	Bio       *string `json:"bio"`                                           // Biography
}

func (r MeRequest) fields() service.UserFields {
	return service.UserFields{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

// UserResponse represents a user account
type UserResponse struct {
	Username  string      `json:"username"`   // Username
	Email     string      `json:"email"`      // Email
	FirstName string      `json:"first_name"` // First name
	LastName  string      `json:"last_name"`  // Last name
	Bio       string      `json:"bio"`        // Biography
	Role      domain.Role `json:"role"`       // User role
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// SlugRequest creates a category or a genre
type SlugRequest struct {
	Name string `json:"name" binding:"required,max=256"`     // Display name
	Slug string `json:"slug" binding:"required,max=50,slug"` // Unique slug
}

// SlugResponse represents a category or a genre
type SlugResponse struct {
	Name string `json:"name"` // Display name
	Slug string `json:"slug"` // Unique slug
}

// TitleRequest is a full or partial title payload referencing slugs
type TitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`    // Title name
	Year        *int     `json:"year" binding:"omitempty,notfuture"`  // Release year
	Description *string  `json:"description"`                         // Description
	Category    *string  `json:"category" binding:"omitempty,max=50"` // Category slug, empty clears it
	Genre       []string `json:"genre" binding:"omitempty,dive,slug"` // Genre slugs, replaces the set when present
}

func (r TitleRequest) fields() service.TitleFields {
	f := service.TitleFields{
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Genre != nil {
		genres := r.Genre
		f.Genres = &genres
	}
	return f
}

// TitleResponse represents a title with its computed rating
type TitleResponse struct {
	ID          uint           `json:"id"`          // Title ID
	Name        string         `json:"name"`        // Title name
	Year        int            `json:"year"`        // Release year
	Rating      *float64       `json:"rating"`      // Mean review score, null without reviews
	Description string         `json:"description"` // Description
	Genre       []SlugResponse `json:"genre"`       // Genres
	Category    *SlugResponse  `json:"category"`    // Category, null when unset
}

func titleResponse(t *domain.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]SlugResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, SlugResponse{Name: g.Name, Slug: g.Slug})
	}
	if t.Category != nil {
		resp.Category = &SlugResponse{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	return resp
}

// ReviewRequest is a full or partial review payload
type ReviewRequest struct {
	Text  *string `json:"text"`                                   // Review body
	Score *int    `json:"score" binding:"omitempty,gte=1,lte=10"` // Score between 1 and 10
}

// ReviewResponse represents a review
type ReviewResponse struct {
	ID      uint      `json:"id"`       // Review ID
	Text    string    `json:"text"`     // Review body
	Author  string    `json:"author"`   // Author username
	Score   int       `json:"score"`    // Score
	PubDate time.Time `json:"pub_date"` // Publication timestamp
}

func reviewResponse(rv *domain.Review) ReviewResponse {
	return ReviewResponse{ID: rv.ID, Text: rv.Text, Author: rv.Author.Username, Score: rv.Score, PubDate: rv.PubDate}
}

// CommentRequest is a comment payload
type CommentRequest struct {
	Text *string `json:"text"` // Comment body
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID      uint      `json:"id"`       // Comment ID
	Text    string    `json:"text"`     // Comment body
	Author  string    `json:"author"`   // Author username
	PubDate time.Time `json:"pub_date"` // Publication timestamp
}

func commentResponse(cm *domain.Comment) CommentResponse {
	return CommentResponse{ID: cm.ID, Text: cm.Text, Author: cm.Author.Username, PubDate: cm.PubDate}
}

// mapSlice converts every item of a listing
func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
