// Package devcode keeps the latest verification code per email in memory so
// development and test environments can fetch codes without an SMTP server.
// Never enable the dev code endpoint in production.
package devcode

import (
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store holds at most one pending code per email. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	nowF    func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		nowF:    time.Now,
	}
}

// Put records the code for email, replacing any previous one.
func (s *Store) Put(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expiresAt: s.nowF().Add(s.ttl)}
}

// Get returns the pending code for email, or ("", false) if none exists or it expired.
func (s *Store) Get(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return "", false
	}
	if s.nowF().After(e.expiresAt) {
		delete(s.entries, email)
		return "", false
	}
	return e.code, true
}
