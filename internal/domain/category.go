package domain

// Category Model
type Category struct {
	ID   uint   `gorm:"primaryKey"`                   // Primary key
	Name string `gorm:"size:256;not null"`            // Display name
	Slug string `gorm:"size:50;uniqueIndex;not null"` // Public key used in URLs and payloads
}

// Genre Model
type Genre struct {
	ID   uint   `gorm:"primaryKey"`                   // Primary key
	Name string `gorm:"size:256;not null"`            // Display name
	Slug string `gorm:"size:50;uniqueIndex;not null"` // Public key used in URLs and payloads
}
