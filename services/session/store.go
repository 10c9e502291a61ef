package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Kerubo0/Rafiki/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found or expired")

// Store keeps conversation state between turns. Updates are all-or-nothing:
// a context transition is never persisted without its entity merge.
type Store interface {
	Create(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	// Update applies fn to the stored session under the session's lock and
	// persists the result. fn must not block on I/O.
	Update(ctx context.Context, sessionID string, fn func(*models.Session)) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

func newSession() *models.Session {
	now := time.Now().UTC()
	return &models.Session{
		SessionID:    uuid.New().String(),
		Context:      models.ContextWelcome,
		Entities:     map[string]any{},
		History:      []models.HistoryEntry{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

// MemoryStore is an in-process session arena with per-entry expiry and a
// janitor loop. It backs the server when Redis is not configured, and tests.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*memoryEntry
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	session   *models.Session
	expiresAt time.Time
}

// NewMemoryStore creates a memory store and starts its cleanup loop.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*memoryEntry),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

// Close stops the janitor loop.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) Create(ctx context.Context) (*models.Session, error) {
	sess := newSession()
	s.mu.Lock()
	s.entries[sess.SessionID] = &memoryEntry{session: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return copySession(sess), nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, ErrNotFound
	}
	// Activity extends the session's life.
	entry.expiresAt = time.Now().Add(s.ttl)
	entry.session.LastActivity = time.Now().UTC()
	return copySession(entry.session), nil
}

func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn func(*models.Session)) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		// Aborted request: leave the stored session untouched.
		return nil, err
	}
	fn(entry.session)
	entry.session.LastActivity = time.Now().UTC()
	entry.expiresAt = time.Now().Add(s.ttl)
	return copySession(entry.session), nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[sessionID]; !ok {
		return ErrNotFound
	}
	delete(s.entries, sessionID)
	return nil
}

// copySession returns a snapshot so callers never share maps with the store.
func copySession(sess *models.Session) *models.Session {
	out := *sess
	out.Entities = make(map[string]any, len(sess.Entities))
	for k, v := range sess.Entities {
		out.Entities[k] = v
	}
	out.History = append([]models.HistoryEntry(nil), sess.History...)
	return &out
}
