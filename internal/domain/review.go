package domain

import "time"

// Review Model
type Review struct {
	ID       uint      `gorm:"primaryKey"`                                                  // Primary key
	TitleID  uint      `gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:2"`    // Foreign key to Title
	AuthorID uint      `gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:1"`    // Foreign key to User, one review per title
	Author   User      `gorm:"constraint:OnDelete:CASCADE;"`                                // Review author
	Text     string    `gorm:"type:text;not null"`                                          // Review body
	Score    int       `gorm:"not null;check:chk_reviews_score,score >= 1 AND score <= 10"` // Score between 1 and 10
	PubDate  time.Time `gorm:"autoCreateTime"`                                              // Publication timestamp
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;"`                                // Comments are deleted with the review
}

// OwnerID returns the author of the review.
func (r *Review) OwnerID() uint { return r.AuthorID }

// Comment Model
type Comment struct {
	ID       uint      `gorm:"primaryKey"`                   // Primary key
	ReviewID uint      `gorm:"not null;index"`               // Foreign key to Review
	AuthorID uint      `gorm:"not null;index"`               // Foreign key to User
	Author   User      `gorm:"constraint:OnDelete:CASCADE;"` // Comment author
	Text     string    `gorm:"type:text;not null"`           // Comment body
	PubDate  time.Time `gorm:"autoCreateTime"`               // Publication timestamp
}

// OwnerID returns the author of the comment.
func (c *Comment) OwnerID() uint { return c.AuthorID }
