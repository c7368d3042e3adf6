package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextKey = "session"

var ErrInvalidSession = errors.New("invalid session cookie")

type claims struct {
	jwt.RegisteredClaims
	LoggedIn bool    `json:"logged_in,omitempty"`
	Username string  `json:"username,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

// Manager encodes sessions as HS256-signed tokens stored in a cookie.
type Manager struct {
	cfg config.Session
	now func() time.Time
}

func NewManager(cfg config.Session) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// Encode signs s into a cookie value.
func (m *Manager) Encode(s *Session) (string, error) {
	now := m.now()
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
		Flashes: s.flashes,
	}
	if s.authenticated {
		c.LoggedIn = true
		c.Username = s.username
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Decode verifies and parses a cookie value.
func (m *Manager) Decode(value string) (*Session, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(value, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.cfg.Secret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}

	s := &Session{flashes: c.Flashes}
	if c.LoggedIn && c.Username != "" {
		s.authenticated = true
		s.username = c.Username
	}
	return s, nil
}

// Middleware attaches the request's session to the gin context. Missing,
// forged or expired cookies yield an anonymous session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := &Session{}
		if value, err := c.Cookie(m.cfg.CookieName); err == nil && value != "" {
			if decoded, err := m.Decode(value); err == nil {
				s = decoded
			} else {
				// drop the unusable cookie on the next Save
				s.dirty = true
			}
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// Get returns the session attached by Middleware, or a fresh anonymous one.
func Get(c *gin.Context) *Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	s := &Session{}
	c.Set(contextKey, s)
	return s
}

// Save writes the session cookie if it changed. It must run before the
// response status is written.
func (m *Manager) Save(c *gin.Context) error {
	s := Get(c)
	if !s.dirty {
		return nil
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.empty() {
		cookie.MaxAge = -1
	} else {
		value, err := m.Encode(s)
		if err != nil {
			return err
		}
		cookie.Value = value
		cookie.MaxAge = int(m.cfg.TTL / time.Second)
	}
	http.SetCookie(c.Writer, cookie)
	s.dirty = false
	return nil
}
