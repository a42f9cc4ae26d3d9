package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"review_system/internal/domain"
	"review_system/internal/testutil"
)

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func rawField(t *testing.T, w *httptest.ResponseRecorder, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	raw, ok := m[key]
	require.True(t, ok, "missing %q in %s", key, w.Body.String())
	return raw
}

func testutilTitle(t *testing.T, a *testAPI, name string) *domain.Title {
	t.Helper()
	return testutil.CreateTitle(t, a.db, name, 2000)
}

func newRawRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serveRaw(a *testAPI, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
