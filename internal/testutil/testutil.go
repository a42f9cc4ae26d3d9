// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"review_system/internal/db"
	"review_system/internal/domain"
)

var dbSeq atomic.Int64

// NewDB returns a migrated, isolated in-memory SQLite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := db.Setup(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return gdb
}

// CreateUser inserts an active user with the given role.
func CreateUser(t testing.TB, gdb *gorm.DB, username string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		IsActive: true,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// CreateTitle inserts a title without category or genres.
func CreateTitle(t testing.TB, gdb *gorm.DB, name string, year int) *domain.Title {
	t.Helper()
	title := &domain.Title{Name: name, Year: year}
	if err := gdb.Omit("Category", "Genres", "Reviews").Create(title).Error; err != nil {
		t.Fatalf("create title %s: %v", name, err)
	}
	return title
}

// CreateReview inserts a review of title by author.
func CreateReview(t testing.TB, gdb *gorm.DB, title *domain.Title, author *domain.User, score int) *domain.Review {
	t.Helper()
	rv := &domain.Review{TitleID: title.ID, AuthorID: author.ID, Text: "review by " + author.Username, Score: score}
	if err := gdb.Omit("Author", "Comments").Create(rv).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return rv
}

// CreateComment inserts a comment on review by author.
func CreateComment(t testing.TB, gdb *gorm.DB, review *domain.Review, author *domain.User) *domain.Comment {
	t.Helper()
	c := &domain.Comment{ReviewID: review.ID, AuthorID: author.ID, Text: "comment by " + author.Username}
	if err := gdb.Omit("Author").Create(c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}
