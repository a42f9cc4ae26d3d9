package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"review_system/internal/domain"
	"review_system/internal/mail"
	"review_system/internal/permission"
	"review_system/internal/repository"
	"review_system/internal/testutil"
	"review_system/internal/utils"
)

const testSecret = "test-secret-that-is-long-enough-for-hmac"

// memCache is an in-process utils.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if key != titleGenerationKey {
		c.hits++
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type env struct {
	db       *gorm.DB
	outbox   *mail.Outbox
	cache    *memCache
	auth     *AuthService
	users    *UserService
	catalog  *CatalogService
	titles   *TitleService
	reviews  *ReviewService
	comments *CommentService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb := testutil.NewDB(t)
	codes, err := utils.NewCodeGenerator(testSecret, time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	genreRepo := repository.NewGenreRepository(gdb)
	titleRepo := repository.NewTitleRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)

	e := &env{db: gdb, outbox: &mail.Outbox{}, cache: newMemCache()}
	titleCache := NewTitleCache(e.cache, time.Minute)
	e.auth = NewAuthService(userRepo, codes, e.outbox, AuthConfig{
		JWTSecret:         testSecret,
		AccessTokenTTL:    time.Hour,
		ReservedUsernames: []string{"me"},
	})
	e.users = NewUserService(userRepo, []string{"me"}, titleCache)
	e.catalog = NewCatalogService(categoryRepo, genreRepo, titleCache)
	e.titles = NewTitleService(titleRepo, categoryRepo, genreRepo, titleCache)
	e.reviews = NewReviewService(titleRepo, reviewRepo, titleCache)
	e.comments = NewCommentService(reviewRepo, commentRepo)
	return e
}

// codeFor returns the last confirmation code mailed to email.
func (e *env) codeFor(t *testing.T, email string) string {
	t.Helper()
	m, ok := e.outbox.Last(email)
	require.True(t, ok, "no mail sent to %s", email)
	fields := strings.Fields(m.Body)
	return fields[len(fields)-1]
}

func requester(u *domain.User) permission.Requester {
	return permission.FromUser(u)
}

func ptr[T any](v T) *T {
	return &v
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
