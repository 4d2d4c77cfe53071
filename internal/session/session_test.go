package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iaejotape/overflow-client/internal/errs"
	"github.com/iaejotape/overflow-client/internal/model"
)

func TestManager_SessionLifecycle(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemStore())
	if m.IsAuthenticated() {
		t.Fatalf("fresh store must not be authenticated")
	}

	if err := m.SetSession("a", "r"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Fatalf("want authenticated after SetSession")
	}
	if tok, ok := m.AccessToken(); !ok || tok != "a" {
		t.Fatalf("AccessToken=%q ok=%v", tok, ok)
	}
	if tok, ok := m.RefreshToken(); !ok || tok != "r" {
		t.Fatalf("RefreshToken=%q ok=%v", tok, ok)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := m.AccessToken(); ok {
		t.Fatalf("access token survived Clear")
	}
	if _, ok := m.RefreshToken(); ok {
		t.Fatalf("refresh token survived Clear")
	}
	if m.IsAuthenticated() {
		t.Fatalf("authenticated after Clear")
	}
}

func TestManager_CurrentUserRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemStore())
	if _, err := m.CurrentUser(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}

	u := model.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Profile:  &model.Profile{Nome: "Alice Silva", TipoUsuario: "estudante"},
	}
	if err := m.SetCurrentUser(u); err != nil {
		t.Fatalf("SetCurrentUser: %v", err)
	}
	got, err := m.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if got.ID != u.ID || got.Username != u.Username || got.Profile == nil || got.Profile.Nome != "Alice Silva" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.DisplayName() != "Alice Silva" {
		t.Fatalf("DisplayName=%q", got.DisplayName())
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := m.CurrentUser(); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("user blob survived Clear: %v", err)
	}
}

func TestManager_ExpiresAt(t *testing.T) {
	t.Parallel()

	m := NewManager(NewMemStore())
	if _, ok := m.ExpiresAt(); ok {
		t.Fatalf("expiry reported without a token")
	}

	_ = m.SetSession("opaque-token", "r")
	if _, ok := m.ExpiresAt(); ok {
		t.Fatalf("expiry reported for non-JWT token")
	}

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_ = m.SetSession(signed, "r")
	got, ok := m.ExpiresAt()
	if !ok || !got.Equal(exp) {
		t.Fatalf("ExpiresAt=%v ok=%v, want %v", got, ok, exp)
	}
}

func withTmpConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "overflow")
}

func TestCfgDir(t *testing.T) {
	base := withTmpConfig(t)
	if got := CfgDir(); got != base {
		t.Fatalf("CfgDir=%q, want %q", got, base)
	}
	if !strings.HasSuffix(base, "overflow") {
		t.Fatalf("unexpected config dir: %s", base)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	s, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	if _, ok := s.Get(accessKey); ok {
		t.Fatalf("fresh store has values")
	}

	m := NewManager(s)
	if err := m.SetSession("a", "r"); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	// Simulates a process restart.
	s2, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	m2 := NewManager(s2)
	if !m2.IsAuthenticated() {
		t.Fatalf("session lost across reopen")
	}
	if tok, _ := m2.AccessToken(); tok != "a" {
		t.Fatalf("access token=%q", tok)
	}

	if err := m2.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	s3, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen after clear: %v", err)
	}
	if _, ok := s3.Get(accessKey); ok {
		t.Fatalf("cleared token still on disk")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file mode=%v, want 0600", info.Mode().Perm())
	}
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFileStore(path); err == nil {
		t.Fatalf("want error for corrupt session file")
	}
}
