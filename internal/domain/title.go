package domain

// Title Model
type Title struct {
	ID          uint      `gorm:"primaryKey"`                                          // Primary key
	Name        string    `gorm:"size:256;not null;index"`                             // Title name
	Year        int       `gorm:"not null;index"`                                      // Release year, never in the future
	Description string    `gorm:"type:text"`                                           // Optional description
	CategoryID  *uint     `gorm:"index"`                                               // Nullable foreign key to Category
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`      // Set to NULL when the category is deleted
	Genres      []Genre   `gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE;"` // Many-to-many through GenreTitle
	Reviews     []Review  `gorm:"constraint:OnDelete:CASCADE;"`                        // Reviews are deleted with the title
	Rating      *float64  `gorm:"->;-:migration"`                                      // Average review score, filled by queries only
}

// GenreTitle links a Title to a Genre.
type GenreTitle struct {
	TitleID uint `gorm:"primaryKey"` // Foreign key to Title
	GenreID uint `gorm:"primaryKey"` // Foreign key to Genre
}
