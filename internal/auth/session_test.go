package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/testutil"
)

func newTestSession(t *testing.T) (*auth.Manager, *auth.Store) {
	t.Helper()
	store := auth.NewStore(&config.Config{Dir: t.TempDir()})
	return auth.NewManager(store, nil), store
}

func TestSession_ValidToken(t *testing.T) {
	sess, store := newTestSession(t)
	token := testutil.MintToken(t, "42", "alice@example.com", time.Now().Add(time.Hour))
	require.NoError(t, store.Set(token))

	got, ok := sess.CurrentToken()
	require.True(t, ok)
	assert.Equal(t, token, got)
	assert.True(t, sess.IsAuthenticated())
}

func TestSession_ExpiredTokenIsCleared(t *testing.T) {
	sess, store := newTestSession(t)
	token := testutil.MintToken(t, "42", "alice@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, store.Set(token))

	assert.False(t, sess.IsAuthenticated())

	// The expired token must be gone from the store, not just rejected.
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestSession_MalformedTokenIsCleared(t *testing.T) {
	sess, store := newTestSession(t)
	require.NoError(t, store.Set("not-a-jwt"))

	_, ok := sess.CurrentToken()
	assert.False(t, ok)

	_, ok = store.Get()
	assert.False(t, ok, "malformed token should be treated like an expired one and cleared")
}

func TestSession_NoToken(t *testing.T) {
	sess, _ := newTestSession(t)

	assert.False(t, sess.IsAuthenticated())

	_, ok := sess.CurrentUser()
	assert.False(t, ok)
}

func TestSession_CurrentUser(t *testing.T) {
	sess, store := newTestSession(t)
	token := testutil.MintToken(t, "42", "alice@example.com", time.Now().Add(time.Hour))
	require.NoError(t, store.Set(token))

	user, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Name, "display name is the local part of the email")
}

func TestSession_CurrentUserFallbackName(t *testing.T) {
	sess, store := newTestSession(t)
	token := testutil.MintToken(t, "7", "", time.Now().Add(time.Hour))
	require.NoError(t, store.Set(token))

	user, ok := sess.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "User", user.Name)
}

func TestSession_SaveAndLogout(t *testing.T) {
	sess, store := newTestSession(t)
	token := testutil.MintToken(t, "1", "bob@example.com", time.Now().Add(time.Hour))

	require.NoError(t, sess.SaveToken(token))
	assert.True(t, sess.HasToken())

	require.NoError(t, sess.Logout())
	assert.False(t, sess.HasToken())

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestSession_HasTokenIgnoresValidity(t *testing.T) {
	sess, store := newTestSession(t)
	require.NoError(t, store.Set("garbage"))

	// Invalid for authentication, but still present for logout purposes.
	assert.True(t, sess.HasToken())
	assert.False(t, sess.IsAuthenticated())
}
