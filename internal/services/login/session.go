package login

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
)

// Session holds the cookies the switch returned on login. The cookies are
// also kept in a scratch file that Close removes.
type Session struct {
	jar        *cookiejar.Jar
	deviceURL  *url.URL
	loginURL   *url.URL
	cookieFile string
	closeOnce  sync.Once
	closeErr   error
}

// cookieFileContent is the on-disk form of a session.
type cookieFileContent struct {
	URL     string         `json:"url"`
	Cookies []storedCookie `json:"cookies"`
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Jar returns the cookie jar to use for further requests to the switch.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}

// Cookies returns the cookies the jar sends with requests under the login
// endpoint's path.
func (s *Session) Cookies() []*http.Cookie {
	return s.jar.Cookies(s.loginURL)
}

// DeviceURL returns the base URL of the switch.
func (s *Session) DeviceURL() *url.URL {
	u := *s.deviceURL
	return &u
}

// CookieFile returns the path of the scratch cookie file.
func (s *Session) CookieFile() string {
	return s.cookieFile
}

// Close discards the session and removes the cookie file. It is safe to
// call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := os.Remove(s.cookieFile); err != nil && !os.IsNotExist(err) {
			s.closeErr = fmt.Errorf("failed to remove cookie file: %w", err)
		}
	})
	return s.closeErr
}

// save writes the cookies set by the switch to the cookie file.
func (s *Session) save(cookies []*http.Cookie) error {
	content := cookieFileContent{URL: s.loginURL.String()}
	for _, c := range cookies {
		content.Cookies = append(content.Cookies, storedCookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}
	if err := os.WriteFile(s.cookieFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return nil
}
