package session

import (
	"path/filepath"
	"testing"

	"learnhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := OpenStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestStoreSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	sess, err := s.Load()
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())

	user := &model.User{ID: 7, Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.Save(Session{Token: "tok", User: user}))

	sess, err = s.Load()
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, user, sess.User)

	require.NoError(t, s.Clear())
	sess, err = s.Load()
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token)
}

func TestStoreDarkModeSurvivesLogout(t *testing.T) {
	s := openTestStore(t)

	on, err := s.DarkMode()
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.SetDarkMode(true))
	require.NoError(t, s.Save(Session{Token: "tok", User: &model.User{ID: 1}}))
	require.NoError(t, s.Clear())

	on, err = s.DarkMode()
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, s.SetDarkMode(false))
	on, err = s.DarkMode()
	require.NoError(t, err)
	assert.False(t, on)
}

func TestStoreDiscardsCorruptUser(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.set(keyToken, "tok"))
	require.NoError(t, s.set(keyUser, "{not json"))

	sess, err := s.Load()
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
}
