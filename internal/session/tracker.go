// Package session implements the single-active-session state machine for
// focus tracking. A Tracker is plain owned state: the caller seeds it with
// persisted history and reads the mutated collections back after each
// transition. Every transition takes an explicit instant so behavior is
// deterministic under test.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"

	appLog "focuscal/internal/log"
	"focuscal/internal/model"
	"focuscal/internal/workhours"
)

// Tracker holds the at-most-one current session plus the completed-session
// history and per-day aggregates it feeds. It is not safe for concurrent
// use; callers that share a Tracker across goroutines must serialize access.
type Tracker struct {
	current *model.FocusSession
	paused  bool

	history []model.FocusSession
	stats   map[string]model.DailyStats
}

// NewTracker seeds a tracker with previously persisted history and daily
// stats. Both may be nil.
func NewTracker(history []model.FocusSession, stats map[string]model.DailyStats) *Tracker {
	if stats == nil {
		stats = make(map[string]model.DailyStats)
	}
	return &Tracker{history: history, stats: stats}
}

// Start begins a new session at now. Any current session is ended first, so
// at most one current session ever exists.
func (t *Tracker) Start(typ model.SessionType, taskID string, now time.Time) model.FocusSession {
	if t.current != nil {
		t.End(now)
	}

	s := model.FocusSession{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		StartTime: now,
		Duration:  0,
		Type:      typ,
	}
	t.current = &s
	t.paused = false

	appLog.Debug("session started", "id", s.ID, "type", string(typ), "task", taskID)
	return s
}

// Pause interrupts the current session: the interrupted flag is set, the
// interruption counter is incremented, and the pause instant recorded. A
// no-op when idle or already paused.
func (t *Tracker) Pause(now time.Time) bool {
	if t.current == nil || t.paused {
		return false
	}
	t.current.Interrupted = true
	t.current.Meta.Interruptions++
	t.current.Meta.PausedAt = now
	t.paused = true
	return true
}

// Resume returns a paused session to active, recording the resume instant.
// The interruption counter is cumulative and is not cleared. A no-op when
// idle or not paused.
func (t *Tracker) Resume(now time.Time) bool {
	if t.current == nil || !t.paused {
		return false
	}
	t.current.Meta.ResumedAt = now
	t.paused = false
	return true
}

// End finalizes the current session at now: the end time is stamped, the
// duration computed from the wall-clock delta, and the session appended to
// history and folded into that day's stats. A no-op when idle.
func (t *Tracker) End(now time.Time) (model.FocusSession, bool) {
	if t.current == nil {
		return model.FocusSession{}, false
	}

	s := *t.current
	s.EndTime = now
	s.Duration = int(math.Round(now.Sub(s.StartTime).Minutes()))

	t.history = append(t.history, s)
	t.foldStats(s, now)

	t.current = nil
	t.paused = false

	appLog.Debug("session ended", "id", s.ID, "duration_min", s.Duration, "interruptions", s.Meta.Interruptions)
	return s, true
}

func (t *Tracker) foldStats(s model.FocusSession, now time.Time) {
	key := workhours.DayKey(now)
	day := t.stats[key]
	if day.Date.IsZero() {
		day.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	day.TotalFocusTime += s.Duration
	day.SessionsCompleted++
	t.stats[key] = day
}

// Current returns a copy of the in-progress session, if any.
func (t *Tracker) Current() (model.FocusSession, bool) {
	if t.current == nil {
		return model.FocusSession{}, false
	}
	return *t.current, true
}

// Tracking reports whether a session is running and not paused.
func (t *Tracker) Tracking() bool {
	return t.current != nil && !t.paused
}

// Paused reports whether the current session is interrupted.
func (t *Tracker) Paused() bool {
	return t.current != nil && t.paused
}

// Elapsed is the wall-clock time since the current session started. Callers
// poll this at whatever cadence their UI wants; the tracker runs no timer of
// its own.
func (t *Tracker) Elapsed(now time.Time) time.Duration {
	if t.current == nil {
		return 0
	}
	return now.Sub(t.current.StartTime)
}

// History returns the completed sessions, oldest first.
func (t *Tracker) History() []model.FocusSession { return t.history }

// Stats returns the per-day aggregates keyed by "YYYY-MM-DD".
func (t *Tracker) Stats() map[string]model.DailyStats { return t.stats }
