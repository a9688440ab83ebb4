package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karat/internal/api"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()

	store, err := NewStore(home)
	require.NoError(t, err)
	assert.Empty(t, store.Token(), "fresh store starts logged out")
	assert.Nil(t, store.Current())

	sess := Session{
		Token:   "tok-abc",
		Refresh: "ref-xyz",
		User:    api.User{ID: api.ID("7"), Email: "m@store.in", Role: api.RoleStoreManager},
	}
	require.NoError(t, store.Save(sess))
	assert.Equal(t, "tok-abc", store.Token())

	// A second store over the same home sees the persisted session.
	reopened, err := NewStore(home)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", reopened.Token())
	require.NotNil(t, reopened.Current())
	assert.Equal(t, "m@store.in", reopened.Current().User.Email)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(Session{Token: "tok"}))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	require.NoError(t, store.Clear(), "clearing twice must not fail")
}

func TestStore_CorruptFileMeansLoggedOut(t *testing.T) {
	home := t.TempDir()
	store, err := NewStore(home)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	reopened, err := NewStore(home)
	require.NoError(t, err)
	assert.Empty(t, reopened.Token())
}

func TestStore_WatchDetectsExternalLogout(t *testing.T) {
	home := t.TempDir()
	store, err := NewStore(home)
	require.NoError(t, err)
	require.NoError(t, store.Save(Session{Token: "tok"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	// Another process logs out: the file disappears.
	require.NoError(t, os.Remove(store.Path()))

	select {
	case ev := <-events:
		assert.Equal(t, Cleared, ev)
		assert.Empty(t, store.Token(), "store must reload before delivering the event")
	case <-time.After(3 * time.Second):
		t.Fatal("expected a Cleared event after external removal")
	}

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open, "channel must close on cancellation")
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not shut down")
	}
}
