package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinybbs/bbs/app/store"
	"github.com/tinybbs/bbs/app/validator"
)

func TestServer_Ping(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, "bbs", rec.Header().Get("App-Name"))
}

func TestServer_Boards(t *testing.T) {
	srv, _ := newTestServer(t, Config{})
	h := srv.routes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/boards", strings.NewReader(`{"name":"news"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boards", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"news"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boards/999", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Uploads(t *testing.T) {
	srv, files := newTestServer(t, Config{})
	require.NoError(t, os.WriteFile(filepath.Join(files.Dir(), "abc_cat.png"), []byte("png"), 0o600))

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/abc_cat.png", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("directory is not listed", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(files.Dir(), "sub"), 0o750))
		for _, path := range []string{"/uploads/", "/uploads/sub/", "/uploads/sub"} {
			rec := httptest.NewRecorder()
			srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			assert.NotEqual(t, http.StatusOK, rec.Code, path)
			assert.NotContains(t, rec.Body.String(), "abc_cat.png", path)
		}
	})
}

func TestServer_Static(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theme.wasm"), []byte("wasm"), 0o600))
	srv, _ := newTestServer(t, Config{StaticDir: dir})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/theme.wasm", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "wasm", rec.Body.String())
}

func TestServer_Admin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	newBoard := func(t *testing.T, h http.Handler) {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/boards", strings.NewReader(`{"name":"gone"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("disabled without hash", func(t *testing.T) {
		srv, _ := newTestServer(t, Config{})
		h := srv.routes()
		newBoard(t, h)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/boards/1", http.NoBody)
		req.SetBasicAuth("admin", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	tbl := []struct {
		name     string
		user     string
		password string
		noAuth   bool
		code     int
	}{
		{name: "no credentials", noAuth: true, code: http.StatusUnauthorized},
		{name: "wrong password", user: "admin", password: "nope", code: http.StatusUnauthorized},
		{name: "wrong user", user: "root", password: "secret", code: http.StatusUnauthorized},
		{name: "valid", user: "admin", password: "secret", code: http.StatusNoContent},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, Config{AdminPasswordHash: string(hash)})
			h := srv.routes()
			newBoard(t, h)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/boards/1", http.NoBody)
			if !tt.noAuth {
				req.SetBasicAuth(tt.user, tt.password)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
			}
		})
	}
}

func TestServer_BaseURL(t *testing.T) {
	srv, _ := newTestServer(t, Config{BaseURL: "/bbs"})
	h := srv.handler()

	t.Run("routes under base url", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bbs/api/v1/boards", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redirects base without slash", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bbs", http.NoBody))
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/bbs/", rec.Header().Get("Location"))
	})

	t.Run("theme cookie path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bbs/api/v1/theme/toggle", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
		c := findCookie(rec, "bbs_theme")
		require.NotNil(t, c)
		assert.Equal(t, "/bbs/", c.Path)
	})
}

func TestServer_Limits(t *testing.T) {
	srv := &Server{}
	assert.Equal(t, int64(32*1024*1024), srv.bodySizeLimit())
	assert.Equal(t, int64(1000), srv.requestsPerSec())
	assert.Equal(t, "/", srv.cookiePath())

	srv = &Server{cfg: Config{BodySizeLimit: 100, RequestsPerSec: 5}, baseURL: "/x"}
	assert.Equal(t, int64(100), srv.bodySizeLimit())
	assert.Equal(t, int64(5), srv.requestsPerSec())
	assert.Equal(t, "/x/", srv.cookiePath())
}

// newTestServer creates a server over a temporary sqlite store and upload dir.
func newTestServer(t *testing.T, cfg Config) (*Server, *store.Files) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	files, err := store.NewFiles(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	cfg.Address = ":8080"
	cfg.ReadTimeout = 5 * time.Second
	cfg.Version = "test"
	return New(st, files, validator.NewService(), cfg), files
}

// findCookie returns the last cookie with the name, the one a browser keeps.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var res *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			res = c
		}
	}
	return res
}

func countCookies(rec *httptest.ResponseRecorder, name string) int {
	n := 0
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			n++
		}
	}
	return n
}
