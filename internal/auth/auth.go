package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/BarryMolina/mathsfun-sub001/internal/config"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrNotConfigured = errors.New("google sign-in is not configured")
	ErrNotSignedIn   = errors.New("not signed in")
)

// Identity is the subset of Google's userinfo response we keep.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Service runs the browser sign-in flow and keeps the resulting session
// cached on disk.
type Service struct {
	oauth   *oauth2.Config
	cache   *TokenCache
	log     *zap.Logger
	port    int
	browser func(url string) error
}

// NewService builds a Service from the Google config. Returns
// ErrNotConfigured when client credentials are absent; callers treat
// sign-in as unavailable rather than failing startup.
func NewService(cfg config.GoogleConfig, log *zap.Logger) (*Service, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = zap.NewNop()
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d/callback", cfg.CallbackPort),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		cache:   NewTokenCache(filepath.Join(dir, "session.json")),
		log:     log,
		port:    cfg.CallbackPort,
		browser: openBrowser,
	}, nil
}

// SignIn runs the full flow: open the consent page, wait for the
// loopback redirect, exchange the code, fetch the identity, and cache
// the session.
func (s *Service) SignIn(ctx context.Context) (*Identity, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	url := s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if err := s.browser(url); err != nil {
		s.log.Warn("could not open browser", zap.Error(err))
		fmt.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", url)
	}

	code, err := waitForCallback(ctx, s.port, state)
	if err != nil {
		return nil, err
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	identity, err := s.fetchIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(&Session{Token: token, Identity: *identity}); err != nil {
		s.log.Warn("could not cache session", zap.Error(err))
	}
	s.log.Info("signed in", zap.String("email", identity.Email))
	return identity, nil
}

// CurrentIdentity returns the cached identity, or ErrNotSignedIn.
func (s *Service) CurrentIdentity() (*Identity, error) {
	sess, err := s.cache.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == nil {
		return nil, ErrNotSignedIn
	}
	return &sess.Identity, nil
}

// SignOut discards the cached session.
func (s *Service) SignOut() error {
	return s.cache.Clear()
}

func (s *Service) fetchIdentity(ctx context.Context, token *oauth2.Token) (*Identity, error) {
	client := s.oauth.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %s", resp.Status)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	if id.ID == "" || id.Email == "" {
		return nil, errors.New("google user info is incomplete")
	}
	return &id, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
