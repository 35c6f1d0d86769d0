package session

import (
	"testing"
	"time"

	"focuscal/internal/model"
	"focuscal/internal/workhours"
)

var t0 = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.Local)

func TestStartEnd(t *testing.T) {
	tr := NewTracker(nil, nil)

	s := tr.Start(model.SessionPomodoro, "task-1", t0)
	if s.ID == "" || s.Duration != 0 || s.Interrupted {
		t.Fatalf("fresh session = %+v", s)
	}
	if !tr.Tracking() {
		t.Error("expected tracking after start")
	}

	ended, ok := tr.End(t0.Add(25 * time.Minute))
	if !ok {
		t.Fatal("expected End to finalize the session")
	}
	if ended.Duration != 25 {
		t.Errorf("duration = %d, want 25", ended.Duration)
	}
	if ended.EndTime.IsZero() {
		t.Error("end time must be stamped")
	}
	if tr.Tracking() {
		t.Error("tracker must be idle after end")
	}
	if len(tr.History()) != 1 {
		t.Fatalf("history = %d entries", len(tr.History()))
	}
}

func TestEnd_RoundsDuration(t *testing.T) {
	tr := NewTracker(nil, nil)
	tr.Start(model.SessionWork, "", t0)
	ended, _ := tr.End(t0.Add(24*time.Minute + 40*time.Second))
	if ended.Duration != 25 {
		t.Errorf("duration = %d, want 25 (rounded)", ended.Duration)
	}
}

func TestStart_EndsCurrentSessionFirst(t *testing.T) {
	tr := NewTracker(nil, nil)
	first := tr.Start(model.SessionWork, "", t0)
	tr.Pause(t0.Add(5 * time.Minute))

	second := tr.Start(model.SessionStudy, "", t0.Add(10*time.Minute))
	if second.ID == first.ID {
		t.Fatal("expected a new session")
	}

	history := tr.History()
	if len(history) != 1 {
		t.Fatalf("prior session must land in history, got %d entries", len(history))
	}
	if history[0].ID != first.ID || history[0].EndTime.IsZero() {
		t.Errorf("prior session not finalized: %+v", history[0])
	}
	cur, ok := tr.Current()
	if !ok || cur.ID != second.ID {
		t.Errorf("current = %+v", cur)
	}
}

func TestPauseResume(t *testing.T) {
	tr := NewTracker(nil, nil)

	// All transitions are no-ops while idle.
	if tr.Pause(t0) || tr.Resume(t0) {
		t.Error("pause/resume must be no-ops while idle")
	}
	if _, ok := tr.End(t0); ok {
		t.Error("end must be a no-op while idle")
	}
	if len(tr.History()) != 0 {
		t.Error("idle end must not create a history entry")
	}

	tr.Start(model.SessionPomodoro, "", t0)

	if !tr.Pause(t0.Add(5 * time.Minute)) {
		t.Fatal("pause from active must succeed")
	}
	if tr.Pause(t0.Add(6 * time.Minute)) {
		t.Error("pause while paused must be a no-op")
	}
	cur, _ := tr.Current()
	if !cur.Interrupted || cur.Meta.Interruptions != 1 {
		t.Errorf("after pause: %+v", cur)
	}
	if cur.Meta.PausedAt.IsZero() {
		t.Error("pause timestamp missing")
	}

	if !tr.Resume(t0.Add(7 * time.Minute)) {
		t.Fatal("resume from paused must succeed")
	}
	if tr.Resume(t0.Add(8 * time.Minute)) {
		t.Error("resume while active must be a no-op")
	}
	cur, _ = tr.Current()
	if cur.Meta.Interruptions != 1 {
		t.Error("interruption counter must be cumulative, not cleared on resume")
	}
	if cur.Meta.ResumedAt.IsZero() {
		t.Error("resume timestamp missing")
	}

	// A second pause keeps counting.
	tr.Pause(t0.Add(10 * time.Minute))
	cur, _ = tr.Current()
	if cur.Meta.Interruptions != 2 {
		t.Errorf("interruptions = %d, want 2", cur.Meta.Interruptions)
	}
}

func TestEnd_FoldsDailyStats(t *testing.T) {
	tr := NewTracker(nil, nil)
	tr.Start(model.SessionWork, "", t0)
	tr.End(t0.Add(30 * time.Minute))
	tr.Start(model.SessionWork, "", t0.Add(time.Hour))
	tr.End(t0.Add(90 * time.Minute))

	key := workhours.DayKey(t0)
	day, ok := tr.Stats()[key]
	if !ok {
		t.Fatalf("no stats for %s", key)
	}
	if day.TotalFocusTime != 60 {
		t.Errorf("total focus time = %d, want 60", day.TotalFocusTime)
	}
	if day.SessionsCompleted != 2 {
		t.Errorf("sessions completed = %d, want 2", day.SessionsCompleted)
	}
}

func TestElapsed(t *testing.T) {
	tr := NewTracker(nil, nil)
	if tr.Elapsed(t0) != 0 {
		t.Error("elapsed while idle must be 0")
	}
	tr.Start(model.SessionWork, "", t0)
	if got := tr.Elapsed(t0.Add(90 * time.Second)); got != 90*time.Second {
		t.Errorf("elapsed = %v", got)
	}
}

func TestNewTracker_SeedsHistory(t *testing.T) {
	seed := []model.FocusSession{{ID: "old", StartTime: t0.AddDate(0, 0, -1), EndTime: t0.AddDate(0, 0, -1).Add(time.Hour), Duration: 60}}
	tr := NewTracker(seed, nil)

	tr.Start(model.SessionWork, "", t0)
	tr.End(t0.Add(10 * time.Minute))

	if got := len(tr.History()); got != 2 {
		t.Errorf("history = %d entries, want seeded + new", got)
	}
}
