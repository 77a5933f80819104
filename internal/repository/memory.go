package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memorySession struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	sessions  map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	session   *entity.Session
	expiresAt time.Time
}

// NewMemorySessionRepository keeps sessions in process memory with the same ttl rules as the Redis store.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySession{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	entry := memoryEntry{session: copySession(session)}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.sessions[session.ID] = entry

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	entry, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	if that.expired(entry, that.now()) {
		that.mu.Lock()
		if current, ok := that.sessions[id]; ok && that.expired(current, that.now()) {
			delete(that.sessions, id)
		}
		that.mu.Unlock()

		return nil, apperror.ErrSessionNotFound
	}

	return copySession(entry.session), nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.sessions[id]
	if !ok {
		return apperror.ErrSessionNotFound
	}
	delete(that.sessions, id)

	if that.expired(entry, that.now()) {
		return apperror.ErrSessionNotFound
	}

	return nil
}

// sweep drops expired entries at most once per ttl. Callers hold mu.
func (that *memorySession) sweep(now time.Time) {
	if that.ttl <= 0 || now.Before(that.lastSweep.Add(that.ttl)) {
		return
	}
	that.lastSweep = now

	for id, entry := range that.sessions {
		if that.expired(entry, now) {
			delete(that.sessions, id)
		}
	}
}

func (that *memorySession) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

func copySession(session *entity.Session) *entity.Session {
	clone := &entity.Session{ID: session.ID}
	if session.Game != nil {
		clone.Game = session.Game.Clone()
	}

	return clone
}
