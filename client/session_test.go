package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsSignedOut(t *testing.T) {
	s := NewSession(&MemorySessionPersistence{})
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession(NewFileSessionPersistence(path))
	s.SignIn(User{ID: "u1", Phone: "01012345678", Name: "أحمد", Role: "user"}, "tok-123")

	restored := NewSession(NewFileSessionPersistence(path))
	require.True(t, restored.Authenticated())
	assert.Equal(t, "tok-123", restored.Token())
	assert.Equal(t, "u1", restored.User().ID)
	assert.Equal(t, "أحمد", restored.User().Name)
}

func TestSessionIgnoresCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("!!not json!!"), 0600))

	s := NewSession(NewFileSessionPersistence(path))
	assert.False(t, s.Authenticated())
}

func TestSignOutClearsMemoryAndPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := NewSession(NewFileSessionPersistence(path))
	s.SignIn(User{ID: "u1"}, "tok-123")
	s.SignOut()

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	restored := NewSession(NewFileSessionPersistence(path))
	assert.False(t, restored.Authenticated())
}

func TestSessionDoesNotExpireLocally(t *testing.T) {
	// Tokens are kept until replaced or signed out; staleness is the
	// server's call.
	s := NewSession(&MemorySessionPersistence{})
	s.SignIn(User{ID: "u1"}, "long-expired-token")
	assert.True(t, s.Authenticated())
	assert.Equal(t, "long-expired-token", s.Token())
}
