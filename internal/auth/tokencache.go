package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// Session is what survives between runs: the OAuth token plus the
// identity it was issued to.
type Session struct {
	Token    *oauth2.Token `json:"token"`
	Identity Identity      `json:"identity"`
}

// TokenCache persists one Session as JSON on disk. The file is written
// atomically and kept owner-only since it holds credentials.
type TokenCache struct {
	path string
}

// NewTokenCache stores the session file at path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// Load returns the cached session, or nil if none exists.
func (c *TokenCache) Load() (*Session, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &s, nil
}

// Save writes the session via a temp file and rename so a crash never
// leaves a half-written credential file behind.
func (c *TokenCache) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Missing file is fine.
func (c *TokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
