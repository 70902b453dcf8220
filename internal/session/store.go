// Package session keeps one dashboard session per browser, keyed by a random
// cookie id, and expires sessions that have been idle for too long.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"pathways.rf2lab.org/internal/dashboard"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Factory builds the dashboard state for a new session.
type Factory func(id string) (*dashboard.Session, error)

type entry struct {
	mu       sync.Mutex
	id       string
	state    *dashboard.Session
	lastSeen time.Time
}

// Store is a concurrency-safe in-memory session table.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	factory  Factory
	ttl      time.Duration
	now      func() time.Time

	cleanupTick *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A background sweep runs every sweepInterval until Stop is called; a
// non-positive interval disables the sweeper.
func NewStore(factory Factory, ttl, sweepInterval time.Duration) (*Store, error) {
	if factory == nil {
		return nil, errors.New("session: nil factory")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session: ttl %v must be positive", ttl)
	}

	s := &Store{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	if sweepInterval > 0 {
		s.cleanupTick = time.NewTicker(sweepInterval)
		s.wg.Add(1)
		go s.cleanup()
	}
	return s, nil
}

// Create starts a new session and returns its id.
func (s *Store) Create() (string, error) {
	id := uuid.NewString()
	state, err := s.factory(id)
	if err != nil {
		return "", fmt.Errorf("session: creating %s: %w", id, err)
	}

	s.mu.Lock()
	s.sessions[id] = &entry{id: id, state: state, lastSeen: s.now()}
	s.mu.Unlock()
	return id, nil
}

// With runs fn with exclusive access to the session's dashboard state and
// refreshes its idle timer.
func (s *Store) With(id string, fn func(*dashboard.Session) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = s.now()
	return fn(e.state)
}

// Ensure returns id if it names a live session and refreshes its idle timer,
// otherwise creates a new session. The second result reports whether a
// session was created.
func (s *Store) Ensure(id string) (string, bool, error) {
	if id != "" {
		if e, err := s.lookup(id); err == nil {
			e.mu.Lock()
			e.lastSeen = s.now()
			e.mu.Unlock()
			return id, false, nil
		}
	}
	newID, err := s.Create()
	if err != nil {
		return "", false, err
	}
	return newID, true, nil
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) lookup(id string) (*entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	// Idle past the ttl counts as gone even before the sweeper runs.
	e.mu.Lock()
	expired := e.lastSeen.Before(s.now().Add(-s.ttl))
	e.mu.Unlock()
	if expired {
		s.Delete(id)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e, nil
}

// Sweep removes sessions idle for longer than the ttl and returns how many it removed.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			// In use right now, so not idle.
			continue
		}
		expired := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) cleanup() {
	defer s.wg.Done()
	for {
		select {
		case <-s.cleanupTick.C:
			s.Sweep()
		case <-s.done:
			return
		}
	}
}

// Stop stops the sweeper and waits for it to exit. It is safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		if s.cleanupTick != nil {
			s.cleanupTick.Stop()
		}
		close(s.done)
		s.wg.Wait()
	})
}
