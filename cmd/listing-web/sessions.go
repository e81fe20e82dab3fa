package main

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// sessionTTL bounds how long generated variants stay resident. Sessions hold
// full rendition sets in memory, so expiry is a memory bound, not a security
// one.
const sessionTTL = 30 * time.Minute

// session holds one processing run's renditions for later download.
type session struct {
	id        string
	createdAt time.Time
	listingID string
	variants  []variants.Variant
}

func (s *session) variant(name string) (variants.Variant, bool) {
	for _, v := range s.variants {
		if v.Name == name {
			return v, true
		}
	}
	return variants.Variant{}, false
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      sessionTTL,
		now:      time.Now,
	}
}

// add stores a new session and evicts any expired ones while holding the lock.
func (s *sessionStore) add(listingID string, vars []variants.Variant) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if now.Sub(sess.createdAt) > s.ttl {
			delete(s.sessions, id)
		}
	}

	sess := &session{
		id:        uuid.NewString(),
		createdAt: now,
		listingID: listingID,
		variants:  vars,
	}
	s.sessions[sess.id] = sess
	return sess
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.createdAt) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}
