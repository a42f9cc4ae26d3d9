package api_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"review_system/internal/api"
	"review_system/internal/domain"
	"review_system/internal/mail"
	"review_system/internal/repository"
	"review_system/internal/service"
	"review_system/internal/testutil"
	"review_system/internal/utils"
)

const testSecret = "api-test-secret-with-enough-length"

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	outbox *mail.Outbox
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gdb := testutil.NewDB(t)
	codes, err := utils.NewCodeGenerator(testSecret, time.Hour)
	require.NoError(t, err)

	users := repository.NewUserRepository(gdb)
	categories := repository.NewCategoryRepository(gdb)
	genres := repository.NewGenreRepository(gdb)
	titles := repository.NewTitleRepository(gdb)
	reviews := repository.NewReviewRepository(gdb)
	comments := repository.NewCommentRepository(gdb)
	cache := service.NewTitleCache(utils.NopCache{}, time.Minute)
	outbox := &mail.Outbox{}
	reserved := []string{"me"}

	router, err := api.NewRouter(api.Deps{
		Auth: service.NewAuthService(users, codes, outbox, service.AuthConfig{
			JWTSecret:         testSecret,
			AccessTokenTTL:    time.Hour,
			ReservedUsernames: reserved,
		}),
		Users:    service.NewUserService(users, reserved, cache),
		Catalog:  service.NewCatalogService(categories, genres, cache),
		Titles:   service.NewTitleService(titles, categories, genres, cache),
		Reviews:  service.NewReviewService(titles, reviews, cache),
		Comments: service.NewCommentService(reviews, comments),
	})
	require.NoError(t, err)
	return &testAPI{t: t, db: gdb, outbox: outbox, router: router}
}

// user creates an active account and returns its bearer token.
func (a *testAPI) user(username string, role domain.Role) string {
	a.t.Helper()
	u := testutil.CreateUser(a.t, a.db, username, role)
	token, err := utils.GenerateJWT(u.ID, testSecret, time.Hour)
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) superuser(username string) string {
	a.t.Helper()
	token := a.user(username, domain.RoleUser)
	require.NoError(a.t, a.db.Model(&domain.User{}).Where("username = ?", username).Update("is_superuser", true).Error)
	return token
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func lastCode(t *testing.T, o *mail.Outbox, email string) string {
	t.Helper()
	m, ok := o.Last(email)
	require.True(t, ok)
	fields := strings.Fields(m.Body)
	return fields[len(fields)-1]
}

type page[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}
