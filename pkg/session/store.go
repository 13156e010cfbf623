package session

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DMWllc/netragpt/pkg/logger"
)

// Store is the process-wide session registry. Sessions are memory-resident
// and intentionally ephemeral; a process restart loses them all.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a registry with the given hard expiry window.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 20 * time.Minute
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (st *Store) SetClock(now func() time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.now = now
}

func (st *Store) clock() func() time.Time {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.now
}

// Create generates a fresh session and registers it.
func (st *Store) Create() *Session {
	now := st.clock()()
	s := &Session{
		ID:              uuid.NewString(),
		CreatedAt:       now,
		LastActivityAt:  now,
		MemoryRetention: map[string]string{},
		KnowledgeUsage:  map[string]int{},
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	logger.DebugCF("session", "Session created", map[string]interface{}{"session_id": s.ID})
	return s
}

// GetOrCreate returns the stored session for id, refreshing its activity
// timestamp, or a fresh session when id is empty or unknown. The second
// return reports whether a new session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return st.Create(), true
	}

	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		s.LastActivityAt = st.now()
	}
	st.mu.Unlock()

	if !ok {
		return st.Create(), true
	}
	return s, false
}

// Get returns the session without touching activity. Used by status checks.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// IsExpired is a pure predicate on creation time: the window is wall-clock
// from CreatedAt and activity never extends it.
func (st *Store) IsExpired(createdAt time.Time) bool {
	return st.clock()().Sub(createdAt) > st.ttl
}

// TimeRemainingMinutes returns the whole minutes left before expiry, floored
// at zero.
func (st *Store) TimeRemainingMinutes(createdAt time.Time) int {
	remaining := st.ttl - st.clock()().Sub(createdAt)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Minute)
}

// Clear removes the session. Idempotent.
func (st *Store) Clear(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Count returns the number of registered sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// SweepExpired removes every session past the expiry window and returns how
// many were dropped.
func (st *Store) SweepExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if now.Sub(s.CreatedAt) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.InfoCF("session", "Swept expired sessions", map[string]interface{}{
			"removed":   removed,
			"remaining": len(st.sessions),
		})
	}
	return removed
}

// MaybeSweep runs SweepExpired with the given probability. The coin flip
// bounds cleanup cost per request while guaranteeing expired sessions are
// eventually removed under load.
func (st *Store) MaybeSweep(probability float64) int {
	if probability <= 0 {
		return 0
	}
	if probability < 1 && rand.Float64() >= probability {
		return 0
	}
	return st.SweepExpired()
}
