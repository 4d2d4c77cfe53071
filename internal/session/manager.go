package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iaejotape/overflow-client/internal/errs"
	"github.com/iaejotape/overflow-client/internal/model"
)

// Storage keys. One active session per client installation.
const (
	accessKey  = "overflow_access_token"
	refreshKey = "overflow_refresh_token"
	userKey    = "overflow_user"
)

// Manager owns the session lifecycle over an injected Store. It holds no
// state of its own, so an isolated instance per test is just a fresh store.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SetSession writes both tokens of a freshly issued session.
func (m *Manager) SetSession(access, refresh string) error {
	if err := m.store.Set(accessKey, access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := m.store.Set(refreshKey, refresh); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, absent if never set or cleared.
func (m *Manager) AccessToken() (string, bool) {
	return m.store.Get(accessKey)
}

// RefreshToken returns the stored refresh token.
func (m *Manager) RefreshToken() (string, bool) {
	return m.store.Get(refreshKey)
}

// IsAuthenticated is defined as "access token present"; the refresh token is
// never separately checked by calling code.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.AccessToken()
	return ok
}

// Clear removes both tokens and the cached user record.
func (m *Manager) Clear() error {
	if err := m.store.Remove(accessKey); err != nil {
		return err
	}
	if err := m.store.Remove(refreshKey); err != nil {
		return err
	}
	return m.store.Remove(userKey)
}

// SetCurrentUser caches the logged-in user record as a JSON blob.
func (m *Manager) SetCurrentUser(u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return m.store.Set(userKey, string(b))
}

// CurrentUser decodes the cached user record. The record is resolved here,
// once, at the session boundary; callers get a typed model.User.
func (m *Manager) CurrentUser() (model.User, error) {
	raw, ok := m.store.Get(userKey)
	if !ok {
		return model.User{}, errs.ErrNoSession
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return model.User{}, fmt.Errorf("decode stored user: %w", err)
	}
	return u, nil
}

// ExpiresAt reports the access token expiry when the token is a JWT carrying
// an exp claim. Diagnostics only: the claim is read without validation and
// authorization stays server-side.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	tok, ok := m.AccessToken()
	if !ok {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser(jwt.WithoutClaimsValidation()).ParseUnverified(tok, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
