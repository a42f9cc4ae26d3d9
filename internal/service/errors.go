// Package service implements the review API use cases on top of the
// repositories. Handlers translate its errors into HTTP responses.
package service

import (
	"errors"
	"sort"
	"strings"

	"review_system/internal/permission"
	"review_system/internal/repository"
	"review_system/internal/utils"
)

// NonFieldErrors is the field key for errors not tied to one input field.
const NonFieldErrors = "non_field_errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidCode      = utils.ErrInvalidCode
	ErrInvalidToken     = errors.New("invalid access token")
)

// ValidationError carries messages per input field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns e when it holds at least one message.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldError builds a ValidationError with a single message.
func FieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, msg)
	return e
}

// notFound maps a missing row to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if repository.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

// authorize applies the object level check of policy.
func authorize(policy permission.Policy, method string, r permission.Requester, obj permission.Owned) error {
	if !policy.HasObjectPermission(method, r, obj) {
		return ErrPermissionDenied
	}
	return nil
}
