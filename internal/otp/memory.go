package otp

import (
	"sync"
	"time"
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is the in-process Store. Expired codes are dropped lazily on
// read and swept by Purge, which the owner may run on a ticker.
type MemoryStore struct {
	mu       sync.Mutex
	codes    map[string]codeEntry
	lastSent map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes:    make(map[string]codeEntry),
		lastSent: make(map[string]time.Time),
	}
}

func (s *MemoryStore) SetCode(mobile, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[mobile] = codeEntry{code: code, expiresAt: expiresAt}
}

func (s *MemoryStore) Code(mobile string) (string, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.codes[mobile]
	if !ok {
		return "", time.Time{}, false
	}
	return e.code, e.expiresAt, true
}

func (s *MemoryStore) DeleteCode(mobile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, mobile)
}

func (s *MemoryStore) LastSent(mobile string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.lastSent[mobile]
	return t, ok
}

func (s *MemoryStore) MarkSent(mobile string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSent[mobile] = at
}

// Purge removes entries expired before now. Last-sent stamps older than an
// hour are dropped too; the resend window is far shorter.
func (s *MemoryStore) Purge(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for m, e := range s.codes {
		if now.After(e.expiresAt) {
			delete(s.codes, m)
		}
	}
	for m, t := range s.lastSent {
		if now.Sub(t) > time.Hour {
			delete(s.lastSent, m)
		}
	}
}
