package mem

import (
	"sync"
	"time"
)

// CachedResponse is a completed HTTP response kept for replay.
type CachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

type IdempotencyStore interface {
	// Begin reserves key for the caller. When a completed response is already
	// stored it is returned with found set. When another request still holds
	// the key, inFlight is set and nothing is reserved.
	Begin(key string, ttl time.Duration) (resp CachedResponse, found bool, inFlight bool)

	// Complete stores the response for a key reserved by Begin.
	Complete(key string, resp CachedResponse)

	// Release drops a reservation so the key can be retried.
	Release(key string)

	// Purge removes expired keys and returns how many were dropped.
	Purge() int
}

type entry struct {
	resp      *CachedResponse
	expiresAt time.Time
}

type IdempotencyCache struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewIdempotencyCache() *IdempotencyCache {
	return &IdempotencyCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *IdempotencyCache) Begin(key string, ttl time.Duration) (CachedResponse, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.data[key]; ok {
		if now.After(e.expiresAt) {
			delete(s.data, key)
		} else if e.resp != nil {
			return *e.resp, true, false
		} else {
			return CachedResponse{}, false, true
		}
	}

	s.data[key] = entry{expiresAt: now.Add(ttl)}
	return CachedResponse{}, false, false
}

func (s *IdempotencyCache) Complete(key string, resp CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return
	}
	e.resp = &resp
	s.data[key] = e
}

func (s *IdempotencyCache) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *IdempotencyCache) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for key, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, key)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of keys held, expired or not.
func (s *IdempotencyCache) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
