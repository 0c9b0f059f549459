package daylog

import (
	"context"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionKey struct {
	userID uuid.UUID
	date   string
}

type registryEntry struct {
	session  *Session
	lastUsed time.Time
}

// Registry keeps one Session per (user, date) and drops sessions that have
// been idle longer than the configured TTL and have no pending writes.
type Registry struct {
	repo     DayLogRepository
	resolver *Resolver
	log      *logging.Logger
	metrics  *metrics.Metrics
	idleTTL  time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[sessionKey]*registryEntry
}

func NewRegistry(repo DayLogRepository, resolver *Resolver, log *logging.Logger, m *metrics.Metrics, idleTTL time.Duration) *Registry {
	return &Registry{
		repo:     repo,
		resolver: resolver,
		log:      log,
		metrics:  m,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[sessionKey]*registryEntry),
	}
}

// Open returns the resolved session for (userID, date), creating it on first
// use. Concurrent callers share a single session.
func (r *Registry) Open(ctx context.Context, userID uuid.UUID, date time.Time) (*Session, error) {
	date = DayOf(date)
	key := sessionKey{userID: userID, date: FormatDate(date)}

	r.mu.Lock()
	e, ok := r.sessions[key]
	if !ok {
		e = &registryEntry{session: NewSession(userID, date, r.repo, r.resolver, r.log, r.metrics)}
		r.sessions[key] = e
		r.metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	e.lastUsed = r.now()
	r.mu.Unlock()

	if err := e.session.Resolve(ctx); err != nil {
		return nil, err
	}
	return e.session, nil
}

// Peek returns the session for (userID, date) if one is held.
func (r *Registry) Peek(userID uuid.UUID, date time.Time) (*Session, bool) {
	key := sessionKey{userID: userID, date: FormatDate(DayOf(date))}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[key]
	if !ok || e.session.State() == Uninitialized {
		return nil, false
	}
	return e.session, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts idle sessions and returns how many were dropped. A session
// with background work still queued is kept so the next Open cannot read a
// row its write has not reached yet.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for key, e := range r.sessions {
		if e.lastUsed.After(cutoff) || e.session.Busy() {
			continue
		}
		delete(r.sessions, key)
		evicted++
	}
	r.metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return evicted
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug(ctx, "evicted idle day log sessions", zap.Int("count", n))
			}
		}
	}
}

// Wait blocks until every held session has finished its background work.
func (r *Registry) Wait() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, e := range r.sessions {
		sessions = append(sessions, e.session)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Wait()
	}
}
