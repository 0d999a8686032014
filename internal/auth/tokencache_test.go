package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	cache := NewTokenCache(path)

	got, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if got != nil {
		t.Fatalf("Load() on missing file = %+v, want nil", got)
	}

	sess := &Session{
		Token: &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		},
		Identity: Identity{ID: "123", Email: "kid@example.com", Name: "Kid"},
	}
	if err := cache.Save(sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}

	got, err = cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Identity.Email != "kid@example.com" {
		t.Errorf("Identity.Email = %q, want %q", got.Identity.Email, "kid@example.com")
	}
	if got.Token.AccessToken != "access" {
		t.Errorf("Token.AccessToken = %q, want %q", got.Token.AccessToken, "access")
	}
}

func TestTokenCacheClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	cache := NewTokenCache(path)

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() on missing file error = %v", err)
	}

	if err := cache.Save(&Session{Token: &oauth2.Token{AccessToken: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file still exists after Clear()")
	}
}

func TestTokenCacheRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenCache(path).Load(); err == nil {
		t.Error("Load() on corrupt file succeeded, want error")
	}
}
