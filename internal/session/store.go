// Package session keeps one form engine per browser session in an in-memory
// TTL cache. Each session serialises access to its engine.
package session

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/goliatone/go-contactform/pkg/engine"
)

// Factory mounts a fresh engine for a new session.
type Factory func() *engine.Engine

// Session owns one engine plus the CSRF token issued with it.
type Session struct {
	id   string
	csrf string

	mu     sync.Mutex
	engine *engine.Engine
}

// ID returns the session identifier stored in the cookie.
func (s *Session) ID() string { return s.id }

// CSRFToken returns the token forms must echo back.
func (s *Session) CSRFToken() string { return s.csrf }

// CheckCSRF compares token against the issued one in constant time.
func (s *Session) CheckCSRF(token string) bool {
	return subtle.ConstantTimeCompare([]byte(s.csrf), []byte(token)) == 1
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(*engine.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how session and CSRF ids are minted.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// WithOnEvicted registers a callback for sessions dropped by expiry or Delete.
// Purges run under the store lock, so fn must not call back into the Store.
func WithOnEvicted(fn func(id string)) Option {
	return func(s *Store) {
		s.onEvicted = fn
	}
}

// Store maps session ids to sessions. Entries expire ttl after their last
// access.
type Store struct {
	cache     *cache.Cache
	ttl       time.Duration
	factory   Factory
	newID     func() string
	onEvicted func(id string)

	// mu orders lookups against purges so a session evicted by Run is never
	// written back by a concurrent refresh.
	mu sync.Mutex
}

// New creates a store. Expired entries are purged by Run; without it they
// are only hidden from Get.
func New(ttl time.Duration, factory Factory, options ...Option) *Store {
	s := &Store{
		cache:   cache.New(ttl, 0),
		ttl:     ttl,
		factory: factory,
		newID:   uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.onEvicted != nil {
		s.cache.OnEvicted(func(id string, _ any) { s.onEvicted(id) })
	}
	return s
}

// Get returns the session and refreshes its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(id)
}

// GetOrCreate returns the session for id, creating a new one (with a new id)
// when id is unknown or expired. created reports which happened.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.touch(id); ok {
		return sess, false
	}
	sess = &Session{
		id:     s.newID(),
		csrf:   s.newID(),
		engine: s.factory(),
	}
	s.cache.Set(sess.id, sess, cache.DefaultExpiration)
	return sess, true
}

func (s *Store) touch(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	value, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := value.(*Session)
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len reports the number of cached sessions, expired ones included until
// the next purge.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Run purges expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purge()
		}
	}
}

func (s *Store) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.DeleteExpired()
}
