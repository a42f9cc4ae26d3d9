package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_system/internal/domain"
)

func newTestGenerator(t *testing.T, now *time.Time) *CodeGenerator {
	t.Helper()
	g, err := NewCodeGenerator("test-secret", time.Hour)
	require.NoError(t, err)
	g.now = func() time.Time { return *now }
	return g
}

func testUser() *domain.User {
	return &domain.User{
		ID:        1,
		Username:  "reader",
		Email:     "reader@example.com",
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC),
	}
}

func TestCodeRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC)
	g := newTestGenerator(t, &now)
	u := testUser()

	code := g.Make(u)
	assert.NoError(t, g.Check(u, code))
}

func TestCodeRejectsWrongValue(t *testing.T) {
	now := time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC)
	g := newTestGenerator(t, &now)
	u := testUser()

	for _, code := range []string{"", "-", "abc", "zz-", "-deadbeef", "!!-00", g.Make(u) + "0"} {
		assert.ErrorIs(t, g.Check(u, code), ErrInvalidCode, code)
	}
}

func TestCodeExpires(t *testing.T) {
	now := time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC)
	g := newTestGenerator(t, &now)
	u := testUser()
	code := g.Make(u)

	now = now.Add(59 * time.Minute)
	assert.NoError(t, g.Check(u, code))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, g.Check(u, code), ErrInvalidCode)
}

func TestCodeBoundToUserState(t *testing.T) {
	now := time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC)
	g := newTestGenerator(t, &now)

	mutations := map[string]func(u *domain.User){
		"activation": func(u *domain.User) { u.IsActive = true },
		"email":      func(u *domain.User) { u.Email = "other@example.com" },
		"username":   func(u *domain.User) { u.Username = "someone" },
		"updated_at": func(u *domain.User) { u.UpdatedAt = u.UpdatedAt.Add(time.Microsecond) },
		"last_login": func(u *domain.User) { ts := now; u.LastLogin = &ts },
	}
	for name, mutate := range mutations {
		u := testUser()
		code := g.Make(u)
		mutate(u)
		assert.ErrorIs(t, g.Check(u, code), ErrInvalidCode, name)
	}
}

func TestCodeKeyDependsOnSecret(t *testing.T) {
	now := time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC)
	g := newTestGenerator(t, &now)
	other, err := NewCodeGenerator("another-secret", time.Hour)
	require.NoError(t, err)
	other.now = g.now

	u := testUser()
	assert.ErrorIs(t, other.Check(u, g.Make(u)), ErrInvalidCode)
}

func TestDeriveKeyIsDomainSeparated(t *testing.T) {
	a, err := DeriveKey("secret", "confirmation-code")
	require.NoError(t, err)
	b, err := DeriveKey("secret", "something-else")
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
