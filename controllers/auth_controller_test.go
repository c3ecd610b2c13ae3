package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/utils"
)

func TestRegisterAutoLogin(t *testing.T) {
	ts := newTestServer(t, false)

	cookie := ts.register(t, "alice", "secret1")

	identity, err := ts.sessions.Resolve(cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "alice", identity.Username)

	user, err := ts.users.FindByUsername("alice")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret1"))
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t, false)

	ts.register(t, "alice", "secret1")
	original, err := ts.users.FindByUsername("alice")
	require.NoError(t, err)

	w := ts.do("POST", "/register", url.Values{
		"username": {"alice"},
		"password": {"other-password"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
	assert.Nil(t, sessionCookie(w, ts.cfg.CookieName), "failed registration must not start a session")

	// The first registration's credential is untouched.
	after, err := ts.users.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, original.PasswordHash, after.PasswordHash)
	assert.True(t, utils.CheckPassword(after.PasswordHash, "secret1"))
}

func TestRegisterMissingFields(t *testing.T) {
	ts := newTestServer(t, false)

	w := ts.do("POST", "/register", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	ts := newTestServer(t, false)
	ts.register(t, "alice", "secret1")

	w := ts.do("POST", "/login", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(w, ts.cfg.CookieName)
	require.NotNil(t, cookie)
	identity, err := ts.sessions.Resolve(cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "alice", identity.Username)
}

func TestLoginFailureIsUniform(t *testing.T) {
	ts := newTestServer(t, false)
	ts.register(t, "alice", "secret1")

	wrongPassword := ts.do("POST", "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	unknownUser := ts.do("POST", "/login", url.Values{
		"username": {"nobody"},
		"password": {"secret1"},
	})

	// Wrong password and unknown username must be indistinguishable.
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, http.StatusFound, wrongPassword.Code)
	assert.Equal(t, "/login", wrongPassword.Header().Get("Location"))
	assert.Equal(t, "/login", unknownUser.Header().Get("Location"))
	assert.Nil(t, sessionCookie(wrongPassword, ts.cfg.CookieName))
	assert.Nil(t, sessionCookie(unknownUser, ts.cfg.CookieName))
}

func TestLogoutEndsSession(t *testing.T) {
	ts := newTestServer(t, false)
	cookie := ts.register(t, "alice", "secret1")

	w := ts.do("GET", "/logout", nil, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	identity, err := ts.sessions.Resolve(cookie.Value)
	require.NoError(t, err)
	assert.Nil(t, identity, "session must be dead after logout")
}

func TestLogoutWhileAnonymous(t *testing.T) {
	ts := newTestServer(t, false)

	w := ts.do("GET", "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestFormsRender(t *testing.T) {
	ts := newTestServer(t, false)

	for _, path := range []string{"/register", "/login", "/create"} {
		w := ts.do("GET", path, nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}
