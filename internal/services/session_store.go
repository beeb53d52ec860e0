package services

import (
	"sync"
	"time"

	"github.com/vytor/flashstudy/internal/study"
)

// sessionEntry holds one live session. mu serializes every transition on it.
type sessionEntry struct {
	mu       sync.Mutex
	id       string
	userID   string
	session  *study.Session
	lastSeen time.Time
}

// sessionStore owns the live sessions of a StudyService.
type sessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func newSessionStore() *sessionStore {
	return &sessionStore{entries: make(map[string]*sessionEntry)}
}

func (s *sessionStore) add(e *sessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.id] = e
}

// get returns the entry only if it belongs to userID.
func (s *sessionStore) get(userID, id string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.userID != userID {
		return nil
	}
	return e
}

func (s *sessionStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictIdle drops entries not touched since cutoff and returns their ids.
// Entries whose lock is held are in use and are skipped. Evicted sessions
// are exited so a request already holding the entry sees it as gone.
func (s *sessionStore) evictIdle(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			e.session.Exit()
			delete(s.entries, id)
			evicted = append(evicted, id)
		}
		e.mu.Unlock()
	}
	return evicted
}
