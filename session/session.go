// Package session keeps the logged-in user id and pending flash messages in a
// signed cookie. The cookie value is an HS256 JWT, so nothing is stored
// server side and a tampered cookie is treated as an empty session.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions(secret)))
//
// Usage (handler):
//
//	sess := session.Get(c)
//	sess.AddFlash(session.Success, "Order placed")
//	sess.Save(c)
package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yeremiapane/restaurant-orders/utils"
)

const contextKey = "session"

// Flash categories understood by the templates.
const (
	Success = "success"
	Danger  = "danger"
	Info    = "info"
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Secret     []byte
}

func DefaultOptions(secret []byte) Options {
	return Options{
		CookieName: "restaurant_session",
		TTL:        24 * time.Hour,
		Secret:     secret,
	}
}

type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Claims is the signed payload of the session cookie.
type Claims struct {
	UserID  uint    `json:"uid,omitempty"`
	Flashes []Flash `json:"fl,omitempty"`
	jwt.RegisteredClaims
}

// Session is the per-request view of the cookie. Changes are written back
// only by Save, which must run before the response body is written.
type Session struct {
	claims  Claims
	opts    Options
	changed bool
}

// Middleware decodes the session cookie and attaches the Session to the
// gin context.
func Middleware(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := &Session{opts: opts}
		if raw, err := c.Cookie(opts.CookieName); err == nil && raw != "" {
			claims, err := Decode(raw, opts.Secret)
			if err != nil {
				utils.InfoLogger.Debugf("discarding session cookie: %v", err)
				s.changed = true
			} else {
				s.claims = *claims
			}
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// Get returns the request's session. Outside the middleware it returns a
// detached empty session so callers never need a nil check.
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

func (s *Session) UserID() uint { return s.claims.UserID }

func (s *Session) SetUserID(id uint) {
	s.claims.UserID = id
	s.changed = true
}

func (s *Session) AddFlash(category, message string) {
	s.claims.Flashes = append(s.claims.Flashes, Flash{Category: category, Message: message})
	s.changed = true
}

// Flashes returns pending messages and removes them from the session.
func (s *Session) Flashes() []Flash {
	out := s.claims.Flashes
	if len(out) > 0 {
		s.claims.Flashes = nil
		s.changed = true
	}
	return out
}

// Clear drops the user id and any pending flashes.
func (s *Session) Clear() {
	s.claims = Claims{}
	s.changed = true
}

// Save writes the cookie when the session changed. An empty session
// deletes the cookie.
func (s *Session) Save(c *gin.Context) error {
	if !s.changed || s.opts.CookieName == "" {
		return nil
	}
	s.changed = false

	c.SetSameSite(http.SameSiteLaxMode)
	if s.claims.UserID == 0 && len(s.claims.Flashes) == 0 {
		c.SetCookie(s.opts.CookieName, "", -1, "/", "", s.opts.Secure, true)
		return nil
	}

	token, err := Encode(s.claims, s.opts.Secret, s.opts.TTL)
	if err != nil {
		utils.ErrorLogger.Errorf("sign session cookie: %v", err)
		return err
	}
	c.SetCookie(s.opts.CookieName, token, int(s.opts.TTL.Seconds()), "/", "", s.opts.Secure, true)
	return nil
}

// Encode signs claims with a fresh expiry.
func Encode(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Decode verifies the signature and expiry of a session cookie.
func Decode(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("session: invalid token")
	}
	return claims, nil
}
