// Package permission decides whether a requester may call an endpoint and
// whether it may act on a loaded object.
//
// Endpoint checks (HasPermission) run before any object is loaded and only
// look at the HTTP method and the requester. Object checks
// (HasObjectPermission) run once the object is known. A superuser passes
// every role check.
package permission

import (
	"net/http"

	"review_system/internal/domain"
)

// Requester is the identity a request is evaluated for.
type Requester struct {
	UserID        uint
	Username      string
	Role          domain.Role
	IsSuperuser   bool
	Authenticated bool
}

// Anonymous returns the requester used when no credentials were sent.
func Anonymous() Requester {
	return Requester{}
}

// FromUser builds an authenticated requester from a stored user.
func FromUser(u *domain.User) Requester {
	return Requester{
		UserID:        u.ID,
		Username:      u.Username,
		Role:          u.Role,
		IsSuperuser:   u.IsSuperuser,
		Authenticated: true,
	}
}

// IsAdmin reports whether the requester has admin rights.
func (r Requester) IsAdmin() bool {
	return r.IsSuperuser || (r.Authenticated && r.Role == domain.RoleAdmin)
}

// Owned is implemented by objects that have an author.
type Owned interface {
	OwnerID() uint
}

// Policy is a pair of endpoint and object level checks.
type Policy interface {
	HasPermission(method string, r Requester) bool
	HasObjectPermission(method string, r Requester, obj Owned) bool
}

// IsSafeMethod reports whether method never mutates state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

var (
	// ReadOpenWriteAuthorOrStaff lets anyone read, authenticated users
	// create, and only the author or staff change an existing object.
	ReadOpenWriteAuthorOrStaff Policy = authorOrStaff{}

	// AdminOnly admits superusers and authenticated admins only.
	AdminOnly Policy = adminOnly{}

	// ReadOpenWriteAdminOnly lets anyone read and only admins write.
	ReadOpenWriteAdminOnly Policy = adminOrReadOnly{}

	// Authenticated admits any authenticated requester.
	Authenticated Policy = authenticated{}
)

type authorOrStaff struct{}

func (authorOrStaff) HasPermission(method string, r Requester) bool {
	return IsSafeMethod(method) || r.Authenticated
}

func (authorOrStaff) HasObjectPermission(method string, r Requester, obj Owned) bool {
	if IsSafeMethod(method) {
		return true
	}
	if !r.Authenticated {
		return false
	}
	return obj.OwnerID() == r.UserID || r.Role.IsStaff() || r.IsSuperuser
}

type adminOnly struct{}

func (adminOnly) HasPermission(_ string, r Requester) bool {
	return r.IsAdmin()
}

func (adminOnly) HasObjectPermission(string, Requester, Owned) bool {
	return true
}

type adminOrReadOnly struct{}

func (adminOrReadOnly) HasPermission(method string, r Requester) bool {
	return IsSafeMethod(method) || r.IsAdmin()
}

func (adminOrReadOnly) HasObjectPermission(string, Requester, Owned) bool {
	return true
}

type authenticated struct{}

func (authenticated) HasPermission(_ string, r Requester) bool {
	return r.Authenticated
}

func (authenticated) HasObjectPermission(string, Requester, Owned) bool {
	return true
}
