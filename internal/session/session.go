// Package session holds the process-wide authenticated session and the
// gate applied to every write action. The Context is injected into its
// consumers with an explicit subscribe/unsubscribe lifecycle rather
// than imported as a singleton.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel kinds for session errors.
var (
	// ErrUnauthorized marks a write attempted without a session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDisabled marks an operation that is disabled regardless of
	// session state.
	ErrDisabled = errors.New("operation disabled")
)

// Fixed user-facing messages for the unconditionally disabled deletes.
const (
	DeleteCommentDisabledMessage = "Deleting comments is disabled."
	DeleteRatingDisabledMessage  = "Deleting ratings is disabled."
)

// User identifies the signed-in coach.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is an authenticated identity valid for write operations.
type Session struct {
	User        User      `json:"user"`
	AccessToken string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session's token lifetime has passed.
// A zero ExpiresAt means the platform did not communicate expiry and
// the session is treated as live.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// TokenExpiry reads the exp claim from a platform access token without
// verifying the signature; verification is the platform's job, the
// client only needs the lifetime.
func TokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// Context tracks the current session and notifies subscribers on every
// change. Safe for concurrent use.
type Context struct {
	mu      sync.RWMutex
	current *Session
	subs    map[int]func(*Session)
	nextID  int
}

// NewContext creates an empty session context.
func NewContext() *Context {
	return &Context{subs: make(map[int]func(*Session))}
}

// Current returns the active session, or nil when signed out or the
// token has expired.
func (c *Context) Current() *Session {
	c.mu.RLock()
	s := c.current
	c.mu.RUnlock()
	if s == nil || s.Expired(time.Now()) {
		return nil
	}
	return s
}

// Set stores s as the active session and notifies subscribers.
func (c *Context) Set(s *Session) {
	c.mu.Lock()
	c.current = s
	subs := c.snapshotSubsLocked()
	c.mu.Unlock()
	// Callbacks run outside the lock so a subscriber may call back in.
	for _, fn := range subs {
		fn(s)
	}
}

// Clear drops the active session and notifies subscribers with nil.
func (c *Context) Clear() {
	c.Set(nil)
}

// Subscribe registers fn for session changes and returns its
// unsubscribe function. fn is not called with the current state.
func (c *Context) Subscribe(fn func(*Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Context) snapshotSubsLocked() []func(*Session) {
	out := make([]func(*Session), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}

// Require gates a write action: it returns the active session or an
// ErrUnauthorized naming the blocked action, e.g. "Login required to
// add drills." The write must never be attempted on error.
func (c *Context) Require(action string) (*Session, error) {
	if s := c.Current(); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: Login required to %s.", ErrUnauthorized, action)
}
