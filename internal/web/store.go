package web

// store.go keeps one comparison session per browser.
//
// Each entry guards its core.Session with a mutex. Uploads take increasing
// tickets before parsing. A ticket may load its records only if no later
// ticket has loaded and no reset happened since it was issued, so a slow
// parse can never overwrite a faster, later one. Tickets that fail or come
// back empty load nothing and block nothing.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/PromptCompare/internal/core"
	"github.com/google/uuid"
)

// SessionStore maps browser session ids to comparison sessions.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	defaultView core.ViewMode
	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionStore creates an empty store. New sessions start in defaultView.
func NewSessionStore(defaultView core.ViewMode, idleTimeout time.Duration) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*sessionEntry),
		defaultView: defaultView,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Acquire returns the session for id, creating one under a fresh id when id
// is empty or unknown. created reports whether a new session was made.
func (st *SessionStore) Acquire(id string) (sid string, entry *sessionEntry, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if e, ok := st.sessions[id]; ok && id != "" {
		e.touch(now)
		return id, e, false
	}

	sid = uuid.NewString()
	entry = &sessionEntry{
		session:  core.NewSession(st.defaultView),
		lastSeen: now,
	}
	st.sessions[sid] = entry
	return sid, entry, true
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts sessions idle for longer than the idle timeout and returns
// how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.idleTimeout)
	removed := 0
	for id, e := range st.sessions {
		if e.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (st *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				slog.Info("evicted idle sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}

// sessionEntry is a core.Session plus the bookkeeping the store needs.
type sessionEntry struct {
	mu      sync.Mutex
	session *core.Session
	// issued is the last ticket handed out; committed is the newest ticket
	// whose records were loaded, or issued at the last reset.
	issued    uint64
	committed uint64
	lastSeen  time.Time
}

func (e *sessionEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *sessionEntry) idleSince() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSeen
}

// Update runs fn with exclusive access to the session.
func (e *sessionEntry) Update(fn func(s *core.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Snapshot copies the current session state.
func (e *sessionEntry) Snapshot() core.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Snapshot()
}

// BeginIngest issues a ticket for an upload that is about to be parsed.
func (e *sessionEntry) BeginIngest() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issued++
	return e.issued
}

// CommitIngest loads records unless a later ticket already loaded or a reset
// happened after ticket was issued. It reports false, leaving the session
// untouched, for a stale ticket.
func (e *sessionEntry) CommitIngest(ticket uint64, records []core.PromptRecord) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ticket <= e.committed {
		return false
	}
	e.committed = ticket
	e.session.Load(records)
	return true
}

// Reset clears the records and invalidates uploads still in flight.
func (e *sessionEntry) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = e.issued
	e.session.Reset()
}
