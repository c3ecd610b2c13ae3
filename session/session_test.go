package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	return NewManager(testSecret, ttl, NewMemoryStore())
}

func TestStartThenResolve(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.Start(Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := m.Resolve(token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestResolveIsAnonymousForGarbage(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for _, cookie := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		identity, err := m.Resolve(cookie)
		require.NoError(t, err)
		assert.Nil(t, identity, "cookie %q should resolve to anonymous", cookie)
	}
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other := NewManager("completely-different-secret!!!!", time.Hour, NewMemoryStore())

	token, err := other.Start(Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	identity, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestEndRevokesBeforeExpiry(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.Start(Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, m.End(token))

	identity, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, identity, "ended session must resolve to anonymous")

	// Ending an already dead session is a no-op, not an error.
	require.NoError(t, m.End(token))
	require.NoError(t, m.End("garbage"))
}

func TestSessionExpires(t *testing.T) {
	m := newTestManager(t, 50*time.Millisecond)

	token, err := m.Start(Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)

	identity, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Put("s1", time.Hour))
	alive, err := s.Has("s1")
	require.NoError(t, err)
	assert.True(t, alive)

	require.NoError(t, s.Delete("s1"))
	alive, err = s.Has("s1")
	require.NoError(t, err)
	assert.False(t, alive)

	require.NoError(t, s.Put("s2", -time.Second))
	alive, err = s.Has("s2")
	require.NoError(t, err)
	assert.False(t, alive, "expired entries are dead")
}
