package permission

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"review_system/internal/domain"
)

type owned uint

func (o owned) OwnerID() uint { return uint(o) }

var (
	anon      = Anonymous()
	plainUser = Requester{UserID: 1, Role: domain.RoleUser, Authenticated: true}
	otherUser = Requester{UserID: 2, Role: domain.RoleUser, Authenticated: true}
	moderator = Requester{UserID: 3, Role: domain.RoleModerator, Authenticated: true}
	admin     = Requester{UserID: 4, Role: domain.RoleAdmin, Authenticated: true}
	superuser = Requester{UserID: 5, Role: domain.RoleUser, IsSuperuser: true, Authenticated: true}
)

var writeMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

func TestIsSafeMethod(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, IsSafeMethod(m), m)
	}
	for _, m := range writeMethods {
		assert.False(t, IsSafeMethod(m), m)
	}
}

func TestFromUser(t *testing.T) {
	r := FromUser(&domain.User{ID: 7, Username: "ann", Role: domain.RoleModerator})
	assert.Equal(t, uint(7), r.UserID)
	assert.Equal(t, "ann", r.Username)
	assert.Equal(t, domain.RoleModerator, r.Role)
	assert.True(t, r.Authenticated)
	assert.False(t, r.IsSuperuser)
}

func TestReadOpenWriteAuthorOrStaff(t *testing.T) {
	p := ReadOpenWriteAuthorOrStaff
	obj := owned(plainUser.UserID)

	t.Run("reads are open", func(t *testing.T) {
		assert.True(t, p.HasPermission(http.MethodGet, anon))
		assert.True(t, p.HasObjectPermission(http.MethodGet, anon, obj))
	})

	t.Run("anonymous writes are rejected", func(t *testing.T) {
		for _, m := range writeMethods {
			assert.False(t, p.HasPermission(m, anon), m)
			assert.False(t, p.HasObjectPermission(m, anon, obj), m)
		}
	})

	t.Run("object writes", func(t *testing.T) {
		cases := []struct {
			name string
			r    Requester
			want bool
		}{
			{"author", plainUser, true},
			{"other user", otherUser, false},
			{"moderator", moderator, true},
			{"admin", admin, true},
			{"superuser", superuser, true},
		}
		for _, tc := range cases {
			assert.True(t, p.HasPermission(http.MethodPatch, tc.r), tc.name)
			assert.Equal(t, tc.want, p.HasObjectPermission(http.MethodPatch, tc.r, obj), tc.name)
			assert.Equal(t, tc.want, p.HasObjectPermission(http.MethodDelete, tc.r, obj), tc.name)
		}
	})
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name string
		r    Requester
		want bool
	}{
		{"anonymous", anon, false},
		{"user", plainUser, false},
		{"moderator", moderator, false},
		{"admin", admin, true},
		{"superuser", superuser, true},
		{"admin role without authentication", Requester{Role: domain.RoleAdmin}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AdminOnly.HasPermission(http.MethodGet, tc.r), tc.name)
		assert.Equal(t, tc.want, AdminOnly.HasPermission(http.MethodPost, tc.r), tc.name)
	}
}

func TestReadOpenWriteAdminOnly(t *testing.T) {
	p := ReadOpenWriteAdminOnly
	for _, r := range []Requester{anon, plainUser, moderator, admin, superuser} {
		assert.True(t, p.HasPermission(http.MethodGet, r))
	}
	for _, m := range writeMethods {
		assert.False(t, p.HasPermission(m, anon), m)
		assert.False(t, p.HasPermission(m, plainUser), m)
		assert.False(t, p.HasPermission(m, moderator), m)
		assert.True(t, p.HasPermission(m, admin), m)
		assert.True(t, p.HasPermission(m, superuser), m)
	}
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Authenticated.HasPermission(http.MethodGet, anon))
	assert.True(t, Authenticated.HasPermission(http.MethodPatch, plainUser))
}
