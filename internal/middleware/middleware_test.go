package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_system/internal/domain"
	"review_system/internal/mail"
	"review_system/internal/permission"
	"review_system/internal/repository"
	"review_system/internal/service"
	"review_system/internal/testutil"
	"review_system/internal/utils"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func withRequester(r permission.Requester) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requesterKey, r)
		c.Next()
	}
}

func serve(t *testing.T, r *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorize(t *testing.T) {
	anon := permission.Anonymous()
	user := permission.Requester{UserID: 1, Role: domain.RoleUser, Authenticated: true}
	admin := permission.Requester{UserID: 2, Role: domain.RoleAdmin, Authenticated: true}

	cases := []struct {
		name   string
		who    permission.Requester
		method string
		want   int
	}{
		{"anonymous read", anon, http.MethodGet, http.StatusOK},
		{"anonymous write", anon, http.MethodPost, http.StatusUnauthorized},
		{"user write", user, http.MethodPost, http.StatusForbidden},
		{"admin write", admin, http.MethodPost, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Handle(tc.method, "/x", withRequester(tc.who), Authorize(permission.ReadOpenWriteAdminOnly), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := serve(t, r, tc.method, "/x", "")
			assert.Equal(t, tc.want, w.Code)
			if tc.want != http.StatusOK {
				assert.Empty(t, w.Body.String())
			}
			if tc.want == http.StatusUnauthorized {
				assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	gdb := testutil.NewDB(t)
	codes, err := utils.NewCodeGenerator(testSecret, time.Hour)
	require.NoError(t, err)
	auth := service.NewAuthService(repository.NewUserRepository(gdb), codes, &mail.Outbox{}, service.AuthConfig{
		JWTSecret:      testSecret,
		AccessTokenTTL: time.Hour,
	})
	ann := testutil.CreateUser(t, gdb, "ann", domain.RoleModerator)
	token, err := utils.GenerateJWT(ann.ID, testSecret, time.Hour)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT(ann.ID, "another-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/who", Authenticate(auth), func(c *gin.Context) {
		req := RequesterFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": req.Username, "role": req.Role, "authenticated": req.Authenticated})
	})

	w := serve(t, r, http.MethodGet, "/who", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"","role":"","authenticated":false}`, w.Body.String())

	w = serve(t, r, http.MethodGet, "/who", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"ann","role":"moderator","authenticated":true}`, w.Body.String())

	for _, header := range []string{"Bearer " + foreign, "Token " + token, "Bearer garbage"} {
		w = serve(t, r, http.MethodGet, "/who", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := serve(t, r, http.MethodGet, "/", "")
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(60, 2)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"))

	now = now.Add(time.Hour)
	assert.True(t, l.Allow("3.3.3.3"))
	assert.Len(t, l.visitors, 1)
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/signup", NewRateLimiter(1, 1).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(t, r, http.MethodPost, "/signup", "").Code)
	w := serve(t, r, http.MethodPost, "/signup", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}
