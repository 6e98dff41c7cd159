package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcm-medical/vcmclient/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), "vcm")
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &domain.Session{
		User:  &domain.User{ID: 7, Email: "doc@example.com", UserType: domain.UserTypeDoctor, ProfileComplete: true},
		Token: "abc",
	}
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.Token)
	assert.Equal(t, "doc@example.com", loaded.User.Email)
	assert.Equal(t, domain.UserTypeDoctor, loaded.User.UserType)
	assert.True(t, loaded.IsAuthenticated())
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "vcm")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	_, err = store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrSessionCorrupt))
}

func TestFileStoreLoadPartialRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "vcm")
	require.NoError(t, err)

	// Record claims authentication but the token is missing. The store
	// hands it back as-is; validity is the controller's call.
	record := `{"user":{"Email":"doc@example.com"},"token":"","isAuthenticated":true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(record), 0o600))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Session{User: &domain.User{Email: "a@b.c"}, Token: "t"}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}
