// Package session wraps scs session management for flash messages and
// CSRF protection.
package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/bookcatalog/internal/config"
)

// Session data keys
const (
	sessionKeyFlashKind    = "flash_kind"
	sessionKeyFlashMessage = "flash_message"
)

// Flash kinds surfaced to templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-time status message that survives a redirect and is
// consumed on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager. The sqlDB parameter
// should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// PutFlash stores a flash message to be shown on the next rendered page.
// A second Put before the first Pop overwrites the pending message.
func (m *Manager) PutFlash(ctx context.Context, kind, message string) {
	m.Put(ctx, sessionKeyFlashKind, kind)
	m.Put(ctx, sessionKeyFlashMessage, message)
}

// HasFlash reports whether a flash message is pending without
// consuming it.
func (m *Manager) HasFlash(ctx context.Context) bool {
	return m.Exists(ctx, sessionKeyFlashMessage)
}

// PopFlash consumes the pending flash message, if any.
func (m *Manager) PopFlash(ctx context.Context) (Flash, bool) {
	message := m.PopString(ctx, sessionKeyFlashMessage)
	kind := m.PopString(ctx, sessionKeyFlashKind)
	if message == "" {
		return Flash{}, false
	}
	if kind == "" {
		kind = FlashSuccess
	}
	return Flash{Kind: kind, Message: message}, true
}
