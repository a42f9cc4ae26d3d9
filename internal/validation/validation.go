// Package validation registers the custom binding rules of the review API on
// gin's go-playground validator and turns binding failures into per-field
// messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the key for errors not tied to one field.
const NonFieldErrors = "non_field_errors"

var (
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

	registerOnce sync.Once
	registerErr  error
)

// Register installs the slug, username and notfuture rules and reports
// fields by their JSON names. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonName)
		for tag, fn := range map[string]validator.Func{
			"slug":      matches(slugRe),
			"username":  matches(usernameRe),
			"notfuture": notFuture,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("register %s validator: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// notFuture accepts years up to and including the current one.
func notFuture(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(time.Now().Year())
	}
	return false
}

// FieldErrors maps a binding error to messages keyed by JSON field name.
// Type errors come from gin's JSON decoder, which is encoding/json.
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			field, _, _ := strings.Cut(fe.Field(), "[")
			out[field] = append(out[field], message(fe))
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		out[typeErr.Field] = append(out[typeErr.Field], fmt.Sprintf("Expected a value of type %s.", typeErr.Type))
	default:
		out[NonFieldErrors] = append(out[NonFieldErrors], "Malformed request body.")
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notfuture":
		return "Year cannot be in the future."
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return "Invalid value."
}
