package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/pkg/metrics"
)

// ActivityLog reads and writes the lastActivity timestamp of one browser.
type ActivityLog struct {
	storage ports.Storage
	now     func() time.Time
	log     zerolog.Logger
}

func NewActivityLog(storage ports.Storage, now func() time.Time, log zerolog.Logger) *ActivityLog {
	if now == nil {
		now = time.Now
	}
	return &ActivityLog{storage: storage, now: now, log: log}
}

// Last returns the recorded activity time. Unparseable values read as absent.
func (a *ActivityLog) Last(ctx context.Context) (time.Time, bool) {
	v, ok, err := a.storage.Get(ctx, domain.LastActivityKey)
	if err != nil {
		a.log.Warn().Err(err).Msg("read last activity")
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		a.log.Warn().Str("value", v).Msg("ignoring unparseable last activity")
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Touch records now as the latest activity. The stored value never moves backwards.
func (a *ActivityLog) Touch(ctx context.Context) error {
	now := a.now()
	if last, ok := a.Last(ctx); ok && last.After(now) {
		return nil
	}
	if err := a.storage.Set(ctx, domain.LastActivityKey, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	return nil
}

// Forget removes the activity timestamp, ending the inactivity window.
func (a *ActivityLog) Forget(ctx context.Context) error {
	if err := a.storage.Delete(ctx, domain.LastActivityKey); err != nil {
		return fmt.Errorf("forget activity: %w", err)
	}
	return nil
}

// ActivityTracker holds the interaction listeners of mounted sessions.
// Events only refresh activity while at least one listener is attached
// for the session.
type ActivityTracker struct {
	mu        sync.Mutex
	listeners map[string]int
	log       zerolog.Logger
}

func NewActivityTracker(log zerolog.Logger) *ActivityTracker {
	return &ActivityTracker{listeners: make(map[string]int), log: log}
}

// Attach registers a listener for sessionID. The returned release func
// deregisters it; calling it more than once has no further effect.
func (t *ActivityTracker) Attach(sessionID string) (release func()) {
	t.mu.Lock()
	t.listeners[sessionID]++
	t.mu.Unlock()
	metrics.ActiveListeners.Inc()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			if t.listeners[sessionID] <= 1 {
				delete(t.listeners, sessionID)
			} else {
				t.listeners[sessionID]--
			}
			t.mu.Unlock()
			metrics.ActiveListeners.Dec()
		})
	}
}

// Listeners returns how many listeners are attached for sessionID.
func (t *ActivityTracker) Listeners(sessionID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.listeners[sessionID]
}

// Record refreshes the session's activity for a recognised interaction.
func (t *ActivityTracker) Record(ctx context.Context, session *Session, event domain.ActivityEvent) error {
	if !event.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownActivity, event)
	}
	if t.Listeners(session.ID) == 0 {
		return domain.ErrNoActiveListener
	}
	if err := session.Activity.Touch(ctx); err != nil {
		return err
	}
	metrics.ActivityEventsTotal.WithLabelValues(string(event)).Inc()
	t.log.Trace().Str("session_id", session.ID).Str("event", string(event)).Msg("activity recorded")
	return nil
}
