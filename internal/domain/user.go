package domain

import "time"

// User Model
type User struct {
	ID          uint   `gorm:"primaryKey"`                    // Primary key
	Username    string `gorm:"size:150;uniqueIndex;not null"` // Unique username
	Email       string `gorm:"size:254;uniqueIndex;not null"` // Unique email, receives confirmation codes
	FirstName   string `gorm:"size:150"`                      // Optional first name
	LastName    string `gorm:"size:150"`                      // Optional last name
	Bio         string `gorm:"type:text"`                     // Optional biography
	IsActive    bool   `gorm:"not null"`                      // Set once a confirmation code is exchanged
	IsSuperuser bool   `gorm:"not null"`                      // Bypasses every role check, only set out of band

	// Role: user, moderator or admin. Writable by admins only.
	Role Role `gorm:"size:16;not null;default:user;check:chk_users_role,role IN ('user','moderator','admin')"`

	LastLogin *time.Time // Last successful token exchange
	CreatedAt time.Time
	UpdatedAt time.Time
}
