package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// ErrSessionStoreFull means the in-memory store is at capacity even after
// sweeping expired sessions.
var ErrSessionStoreFull = errors.New("session store is full")

// SessionRepository owns ingestion sessions. A session exists fully formed
// or not at all: Create stores the complete tuple atomically and Mutate
// applies an edit-plus-rederive closure under a per-session lock, so two
// edits to the same session never interleave. Distinct sessions mutate
// concurrently.
//
// Absent ids surface as gorm.ErrRecordNotFound to keep error mapping
// uniform with the catalog repositories.
type SessionRepository interface {
	Create(ctx context.Context, sess *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	// Mutate runs fn against the stored session and persists the result
	// when fn succeeds. fn runs serialized per session id; an error from fn
	// leaves the stored session untouched.
	Mutate(ctx context.Context, id string, fn func(*model.Session) error) (*model.Session, error)
	// Delete is idempotent; removing an absent session is not an error.
	Delete(ctx context.Context, id string) error
}

// ── In-memory implementation ──
//
// Retention is a TTL refreshed on every access plus a hard capacity bound.
// Expired entries are swept lazily on create/get/mutate; there is no
// background goroutine, matching the request-driven model of the rest of
// the service.

// sessionEntry locking: expiresAt is guarded by the store mutex; sess is
// guarded by the entry mutex so reads and mutations of one session
// serialize without blocking the rest of the store.
type sessionEntry struct {
	mu        sync.Mutex
	sess      *model.Session
	expiresAt time.Time
}

type memorySessionRepo struct {
	mu          sync.RWMutex
	entries     map[string]*sessionEntry
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewMemorySessionRepo creates the in-memory session store.
func NewMemorySessionRepo(ttl time.Duration, maxSessions int) SessionRepository {
	return &memorySessionRepo{
		entries:     make(map[string]*sessionEntry),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

func (r *memorySessionRepo) Create(_ context.Context, sess *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	if len(r.entries) >= r.maxSessions {
		return ErrSessionStoreFull
	}

	r.entries[sess.SessionID] = &sessionEntry{
		sess:      sess.Clone(),
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

func (r *memorySessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	entry, ok := r.liveEntryLocked(id)
	if !ok {
		r.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	entry.expiresAt = r.now().Add(r.ttl)
	r.mu.Unlock()

	// entry.sess is published under entry.mu; reads must hold it too so a
	// concurrent Mutate on the same id cannot race the clone.
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.sess.Clone(), nil
}

func (r *memorySessionRepo) Mutate(_ context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	r.mu.Lock()
	entry, ok := r.liveEntryLocked(id)
	if !ok {
		r.mu.Unlock()
		return nil, gorm.ErrRecordNotFound
	}
	entry.expiresAt = r.now().Add(r.ttl)
	r.mu.Unlock()

	// Per-entry lock: edits to one session are linearized while other
	// sessions stay untouched.
	entry.mu.Lock()
	defer entry.mu.Unlock()

	draft := entry.sess.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	draft.UpdatedAt = r.now().UTC()
	entry.sess = draft
	return draft.Clone(), nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// liveEntryLocked returns the entry unless it is absent or expired.
// Callers hold r.mu.
func (r *memorySessionRepo) liveEntryLocked(id string) (*sessionEntry, bool) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	if r.now().After(entry.expiresAt) {
		delete(r.entries, id)
		return nil, false
	}
	return entry, true
}

// sweepLocked drops every expired entry. Callers hold r.mu.
func (r *memorySessionRepo) sweepLocked() {
	now := r.now()
	for id, entry := range r.entries {
		if now.After(entry.expiresAt) {
			delete(r.entries, id)
		}
	}
}
