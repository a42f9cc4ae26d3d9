package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string   `json:"username" binding:"required,max=150,username"`
	Slug     string   `json:"slug" binding:"omitempty,slug"`
	Year     *int     `json:"year" binding:"omitempty,notfuture"`
	Score    int      `json:"score" binding:"omitempty,gte=1,lte=10"`
	Role     string   `json:"role" binding:"omitempty,oneof=user moderator admin"`
	Genre    []string `json:"genre" binding:"omitempty,dive,slug"`
}

func intPtr(v int) *int { return &v }

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}

func TestCustomRules(t *testing.T) {
	require.NoError(t, Register())
	nextYear := time.Now().Year() + 1

	cases := []struct {
		name  string
		in    sample
		field string
	}{
		{"valid", sample{Username: "ann.b@x+y-z_1", Slug: "sci-fi_2", Year: intPtr(1900), Genre: []string{"drama"}}, ""},
		{"username charset", sample{Username: "ann smith"}, "username"},
		{"username missing", sample{}, "username"},
		{"username too long", sample{Username: strings.Repeat("a", 151)}, "username"},
		{"slug charset", sample{Username: "ann", Slug: "sci fi"}, "slug"},
		{"future year", sample{Username: "ann", Year: intPtr(nextYear)}, "year"},
		{"ancient year", sample{Username: "ann", Year: intPtr(-500)}, ""},
		{"score range", sample{Username: "ann", Score: 11}, "score"},
		{"role", sample{Username: "ann", Role: "owner"}, "role"},
		{"genre item", sample{Username: "ann", Genre: []string{"ok", "not ok"}}, "genre"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.in)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FieldErrors(err)
			assert.Contains(t, fields, tc.field)
			assert.Len(t, fields, 1)
		})
	}
}

func TestFieldErrorsMessages(t *testing.T) {
	require.NoError(t, Register())
	err := binding.Validator.ValidateStruct(&sample{Username: "ann", Role: "owner", Year: intPtr(time.Now().Year() + 5)})
	fields := FieldErrors(err)
	assert.Equal(t, []string{"Must be one of: user, moderator, admin."}, fields["role"])
	assert.Equal(t, []string{"Year cannot be in the future."}, fields["year"])
}

func TestFieldErrorsMalformedBody(t *testing.T) {
	fields := FieldErrors(assert.AnError)
	assert.Equal(t, []string{"Malformed request body."}, fields[NonFieldErrors])
}
