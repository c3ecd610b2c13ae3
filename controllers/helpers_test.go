package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/routes"
	"github.com/inkpress/inkpress/session"
	"github.com/inkpress/inkpress/store"
	"github.com/inkpress/inkpress/utils"
)

// Fakes are in-memory implementations of the store interfaces, so the
// handlers run against real routing and templates without a database.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by username
	// set to simulate a storage failure
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Username]; ok {
		return store.ErrDuplicateUsername
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) FindByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	seq   int
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[string]*models.Post{}}
}

func (f *fakePostStore) Create(post *models.Post) error {
	if err := store.ValidatePostFields(store.PostFields{Title: post.Title, Snippet: post.Snippet, Body: post.Body}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = uuid.NewString()
	// Spread creation timestamps so ordering is deterministic even when
	// two creates land in the same clock tick.
	post.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	post.UpdatedAt = post.CreatedAt
	f.seq++
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) Get(id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostStore) ListAll() ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePostStore) Update(id string, fields store.PostFields) error {
	if err := store.ValidatePostFields(fields); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Title, p.Snippet, p.Body = fields.Title, fields.Snippet, fields.Body
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakePostStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

type testServer struct {
	router   *gin.Engine
	users    *fakeUserStore
	posts    *fakePostStore
	sessions *session.Manager
	cfg      config.AppConfig
}

func newTestServer(t *testing.T, enforceOwnership bool) *testServer {
	t.Helper()

	cfg := config.AppConfig{
		AppPort:            "0",
		GinMode:            "test",
		SessionSecret:      "test-secret-at-least-16-chars!!",
		SessionTTLHours:    1,
		CookieName:         "inkpress_session",
		OwnershipEnforced:  enforceOwnership,
		RateLimitPerMinute: 10000,
		TemplateGlob:       "../templates/*.html",
		StaticDir:          "../static",
		LogLevel:           "error",
	}
	config.SetForTest(cfg)
	require.NoError(t, utils.InitLogger(cfg))

	users := newFakeUserStore()
	posts := newFakePostStore()
	sessions := session.NewManager(cfg.SessionSecret, time.Hour, session.NewMemoryStore())

	return &testServer{
		router:   routes.SetupRouter(cfg, users, posts, sessions),
		users:    users,
		posts:    posts,
		sessions: sessions,
		cfg:      cfg,
	}
}

func (ts *testServer) do(method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// register signs a user up and returns the session cookie.
func (ts *testServer) register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := ts.do("POST", "/register", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	cookie := sessionCookie(w, ts.cfg.CookieName)
	require.NotNil(t, cookie, "registration must auto-start a session")
	return cookie
}

func sessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}
