// Package login establishes an authenticated HTTP session with the switch.
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/rs/zerolog"
)

// LoginPath is the switch's login endpoint.
const LoginPath = "/cgi/login.cgi"

var (
	// ErrTransportFailure is returned when the request did not complete:
	// connection refused, DNS failure, timeout.
	ErrTransportFailure = errors.New("login request failed")

	// ErrLoginRejected is returned when the switch answers with an error status.
	ErrLoginRejected = errors.New("switch rejected login")

	// ErrNoSessionCookie is returned when the switch answered but set no cookie.
	ErrNoSessionCookie = errors.New("switch did not return a session cookie")
)

// Service defines the interface for switch login.
type Service interface {
	Login(ctx context.Context, cfg models.ResolvedConfig, hashedPassword string) (*Session, error)
}

// HTTPClient allows mocking HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientFactory builds the HTTP client for one login, bound to the
// session's cookie jar.
type ClientFactory func(jar http.CookieJar, timeout time.Duration) HTTPClient

// DefaultClientFactory returns an http.Client that follows redirects with
// the session jar attached.
func DefaultClientFactory(jar http.CookieJar, timeout time.Duration) HTTPClient {
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}

// Impl implements the login Service interface.
type Impl struct {
	newClient ClientFactory
	logger    zerolog.Logger
	tempDir   string
}

// New creates a new login service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		newClient: DefaultClientFactory,
		logger:    logger,
		tempDir:   os.TempDir(),
	}
}

// NewWithClient creates a new login service with a custom HTTP client and
// cookie file directory (for testing).
func NewWithClient(logger zerolog.Logger, httpClient HTTPClient, tempDir string) *Impl {
	return &Impl{
		newClient: func(http.CookieJar, time.Duration) HTTPClient { return httpClient },
		logger:    logger,
		tempDir:   tempDir,
	}
}

// Login posts the hashed password to the switch and returns the resulting
// session. The caller must Close the session.
func (s *Impl) Login(ctx context.Context, cfg models.ResolvedConfig, hashedPassword string) (*Session, error) {
	deviceURL := &url.URL{Scheme: "http", Host: cfg.DeviceAddress, Path: "/"}
	loginURL := deviceURL.ResolveReference(&url.URL{Path: LoginPath})

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	f, err := os.CreateTemp(s.tempDir, "dgs-backup-cookies-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie file: %w", err)
	}
	_ = f.Close()

	session := &Session{jar: jar, deviceURL: deviceURL, loginURL: loginURL, cookieFile: f.Name()}
	established := false
	defer func() {
		if !established {
			_ = session.Close()
		}
	}()

	form := url.Values{"pass": {hashedPassword}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	s.logger.Info().
		Str("url", loginURL.String()).
		Msg("logging in to switch")

	timeout := cfg.LoginTimeout
	if timeout <= 0 {
		timeout = models.Defaults().LoginTimeout
	}

	resp, err := s.newClient(jar, timeout).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A client without the jar attached (or a redirect chain) may have left
	// the final response's cookies out of the jar.
	responseURL := loginURL
	if resp.Request != nil && resp.Request.URL != nil {
		responseURL = resp.Request.URL
	}
	jar.SetCookies(responseURL, resp.Cookies())

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrLoginRejected, resp.StatusCode)
	}

	cookies := session.Cookies()
	if len(cookies) == 0 {
		return nil, ErrNoSessionCookie
	}

	if err := session.save(cookies); err != nil {
		return nil, err
	}

	established = true
	s.logger.Info().
		Int("status", resp.StatusCode).
		Int("cookies", len(cookies)).
		Msg("switch session established")

	return session, nil
}
