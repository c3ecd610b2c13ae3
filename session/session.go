// Package session binds request cookies to authenticated identities.
//
// The cookie value is an HS256-signed token carrying the user id, the
// username and an opaque session id. The session id is additionally kept in
// a server-side active-session store, so logout revokes a session before
// the token's natural expiry. The store is Redis-backed when Redis is
// configured and in-process otherwise (single instance only).
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated user attached to a request.
type Identity struct {
	ID       string
	Username string
}

// Claims are the token claims stored in the session cookie.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  Store
}

// NewManager creates a Manager over the given active-session store.
func NewManager(secret string, ttl time.Duration, store Store) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, store: store}
}

// Start begins a session for the identity and returns the cookie value.
func (m *Manager) Start(identity Identity) (string, error) {
	sessionID := uuid.NewString()
	if err := m.store.Put(sessionID, m.ttl); err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:    identity.ID,
		Username:  identity.Username,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve maps a cookie value back to an identity. It returns (nil, nil)
// for anything that is not a live session: a missing, malformed, expired or
// revoked token is simply an anonymous request, not an error. Resolution
// has no side effects.
func (m *Manager) Resolve(cookieValue string) (*Identity, error) {
	if cookieValue == "" {
		return nil, nil
	}

	claims, err := m.parse(cookieValue)
	if err != nil {
		return nil, nil
	}

	alive, err := m.store.Has(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, nil
	}

	return &Identity{ID: claims.UserID, Username: claims.Username}, nil
}

// End revokes the session named by the cookie value. Only a store I/O
// failure is an error; ending an already dead session is a no-op.
func (m *Manager) End(cookieValue string) error {
	claims, err := m.parse(cookieValue)
	if err != nil {
		return nil
	}
	return m.store.Delete(claims.SessionID)
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
