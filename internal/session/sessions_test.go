package session

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/config"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := "./test_sessions_" + t.Name() + ".db"

	sqlDB, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
		os.Remove(dbPath)
	})

	manager, err := NewManager(sqlDB, config.Session{Lifetime: time.Hour})
	require.NoError(t, err)
	return manager
}

func loadSession(t *testing.T, m *Manager) context.Context {
	t.Helper()
	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)
	return ctx
}

func TestFlash_PutAndPop(t *testing.T) {
	m := setupManager(t)
	ctx := loadSession(t, m)

	m.PutFlash(ctx, FlashSuccess, "Book added")

	flash, ok := m.PopFlash(ctx)
	require.True(t, ok)
	assert.Equal(t, FlashSuccess, flash.Kind)
	assert.Equal(t, "Book added", flash.Message)
}

func TestFlash_HasFlashDoesNotConsume(t *testing.T) {
	m := setupManager(t)
	ctx := loadSession(t, m)

	assert.False(t, m.HasFlash(ctx))

	m.PutFlash(ctx, FlashSuccess, "Book added")

	assert.True(t, m.HasFlash(ctx))
	assert.True(t, m.HasFlash(ctx), "peeking must leave the message pending")

	flash, ok := m.PopFlash(ctx)
	require.True(t, ok)
	assert.Equal(t, "Book added", flash.Message)
	assert.False(t, m.HasFlash(ctx))
}

func TestFlash_ConsumedExactlyOnce(t *testing.T) {
	m := setupManager(t)
	ctx := loadSession(t, m)

	m.PutFlash(ctx, FlashError, "Something broke")

	_, ok := m.PopFlash(ctx)
	require.True(t, ok)

	_, ok = m.PopFlash(ctx)
	assert.False(t, ok)
}

func TestFlash_EmptyWhenNothingPending(t *testing.T) {
	m := setupManager(t)
	ctx := loadSession(t, m)

	_, ok := m.PopFlash(ctx)
	assert.False(t, ok)
}

func TestFlash_LatestMessageWins(t *testing.T) {
	m := setupManager(t)
	ctx := loadSession(t, m)

	m.PutFlash(ctx, FlashSuccess, "first")
	m.PutFlash(ctx, FlashError, "second")

	flash, ok := m.PopFlash(ctx)
	require.True(t, ok)
	assert.Equal(t, FlashError, flash.Kind)
	assert.Equal(t, "second", flash.Message)
}
