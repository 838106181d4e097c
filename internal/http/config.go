package http

import (
	"time"

	"github.com/mrlokans/bookcatalog/internal/cache"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. Dependencies are injected here once at
// process start; controllers hold no global state.
type RouterConfig struct {
	// Core dependencies
	Store    BookStore
	Database *database.Database

	// Sessions carry flash messages across redirects
	Sessions *session.Manager

	// Response cache for the list page (nil disables caching)
	Cache    cache.ResponseCache
	CacheTTL time.Duration

	// List query tuning
	PageSize     int
	QueryTimeout time.Duration

	// UI paths
	TemplatesPath string
	StaticPath    string

	// CSRF protection for mutating form posts
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
