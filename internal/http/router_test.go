package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/cache"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/pagination"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// setupIntegrationRouter wires a real database, repository and session
// manager behind the full router, with CSRF disabled. Adjust functions
// let a test swap in a stub store, a cache or a CSRF secret.
func setupIntegrationRouter(t *testing.T, adjust ...func(*RouterConfig)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_router_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := session.NewManager(sqlDB, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)

	cfg := RouterConfig{
		Store:         books.NewRepository(db.DB),
		Database:      db,
		Sessions:      sessions,
		QueryTimeout:  time.Second,
		TemplatesPath: "../../templates",
		StaticPath:    "../../static",
		Version:       "test",
	}
	for _, fn := range adjust {
		fn(&cfg)
	}
	return NewRouter(cfg)
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database": "ok"`)
}

func TestRouter_CreateListEditDeleteFlow(t *testing.T) {
	router := setupIntegrationRouter(t)

	// Create a book through the form
	w := httptest.NewRecorder()
	form := url.Values{
		"name":        {"Dune"},
		"author":      {"Frank Herbert"},
		"publishDate": {"1965-01-01"},
		"description": {"Sci-fi"},
	}
	req, _ := http.NewRequest("POST", "/books", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "the redirect must carry the session cookie")

	// Follow the redirect: the flash shows once
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "was added to the catalog")
	assert.Contains(t, w.Body.String(), "Dune")

	// The flash does not show twice
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "was added to the catalog")

	// Edit form renders the stored record
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books/1/edit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frank Herbert")
	assert.Contains(t, w.Body.String(), "1965-01-01")

	// Delete it and check the list is empty again
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/books/1/delete", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No books on this shelf")
}

func TestRouter_ForgedPostNeverReachesTheStore(t *testing.T) {
	store := &stubStore{}
	router := setupIntegrationRouter(t, func(cfg *RouterConfig) {
		cfg.Store = store
		cfg.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/books/9/delete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, store.deleteCalls, "a rejected post must not run the controller")
}

var csrfTokenField = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func TestRouter_CachedListServesEachSessionItsOwnToken(t *testing.T) {
	store := &stubStore{
		listFunc: func(params books.ListParams) (pagination.Page[entities.Book], error) {
			items := []entities.Book{{ID: 1, Name: "Dune", Author: "Frank Herbert", PublishDate: time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC)}}
			return pagination.New(items, params.Page, params.PageSize, 1), nil
		},
	}
	router := setupIntegrationRouter(t, func(cfg *RouterConfig) {
		cfg.Store = store
		cfg.Cache = cache.NewMemoryCache()
		cfg.CacheTTL = time.Minute
		cfg.CSRFSecret = []byte("0123456789abcdef0123456789abcdef")
	})

	// The first visitor fills the cache.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/books", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.listCalls)

	// A second visitor with no cookies is served from the cache.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, store.listCalls, "the second visitor must hit the cache")

	matches := csrfTokenField.FindStringSubmatch(w.Body.String())
	require.Len(t, matches, 2, "the cached page must carry a token")
	token := matches[1]
	require.NotEqual(t, cachedTokenPlaceholder, token)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The token on the cached page is valid for the second visitor's
	// own session.
	form := url.Values{"gorilla.csrf.Token": {token}}
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/books/1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, store.deleteCalls)
}

func TestRouter_FlashSurvivesAFailedList(t *testing.T) {
	failing := false
	store := &stubStore{
		listFunc: func(params books.ListParams) (pagination.Page[entities.Book], error) {
			if failing {
				return pagination.Page[entities.Book]{}, assert.AnError
			}
			return pagination.New([]entities.Book{}, params.Page, params.PageSize, 0), nil
		},
	}
	router := setupIntegrationRouter(t, func(cfg *RouterConfig) {
		cfg.Store = store
	})

	// A delete queues the flash message.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/books/1/delete", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The redirect target fails before it can render the message.
	failing = true
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The message is still pending on the retry.
	failing = false
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/books", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "removed from the catalog")
}

func TestRouter_MissingBookIs404(t *testing.T) {
	router := setupIntegrationRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/books/999/edit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
