// Package repository holds the gorm backed persistence for the review API.
//
// Every multi-statement write runs inside one transaction. Cascading deletes
// (title -> reviews -> comments, category -> SET NULL, genre -> links) are
// executed explicitly so they hold regardless of whether the database
// enforces the declared foreign keys.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Page selects a window of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Size)
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without an error translator
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
