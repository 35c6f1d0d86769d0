// Package calendar composes the time-window calculator, the ICS importer,
// the session tracker, and the analytics into the operations a caller
// invokes. The service owns no storage: collections are passed in and
// results returned; persistence is the caller's job.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"focuscal/internal/analytics"
	"focuscal/internal/ics"
	appLog "focuscal/internal/log"
	"focuscal/internal/model"
	"focuscal/internal/workhours"
)

// NoUpcomingEvent is returned by TimeUntilNextEvent when no pending future
// event exists.
const NoUpcomingEvent = time.Duration(-1)

// Service is the calendar facade. Now is the clock used when the caller does
// not supply an instant; tests override it for determinism.
type Service struct {
	Now func() time.Time
}

func NewService() *Service {
	return &Service{Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EventsForDate filters events to those scheduled on the given local date.
func (s *Service) EventsForDate(events []model.ScheduledEvent, date time.Time) []model.ScheduledEvent {
	out := make([]model.ScheduledEvent, 0)
	for _, e := range events {
		if workhours.SameDay(e.ScheduledTime, date) {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingEvents returns pending events within the next minutesAhead
// minutes, soonest first.
func (s *Service) UpcomingEvents(events []model.ScheduledEvent, minutesAhead int) []model.ScheduledEvent {
	now := s.now()
	cutoff := now.Add(time.Duration(minutesAhead) * time.Minute)

	out := make([]model.ScheduledEvent, 0)
	for _, e := range events {
		if e.Completed {
			continue
		}
		if e.ScheduledTime.After(now) && !e.ScheduledTime.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out
}

// TimeUntilNextEvent returns the interval until the soonest pending future
// event, or NoUpcomingEvent when there is none.
func (s *Service) TimeUntilNextEvent(events []model.ScheduledEvent) time.Duration {
	now := s.now()
	var next time.Time
	for _, e := range events {
		if e.Completed || !e.ScheduledTime.After(now) {
			continue
		}
		if next.IsZero() || e.ScheduledTime.Before(next) {
			next = e.ScheduledTime
		}
	}
	if next.IsZero() {
		return NoUpcomingEvent
	}
	return next.Sub(now)
}

// Overview assembles the daily overview record for direct display: today's
// focus time and sessions, today's and upcoming events, and the day's
// productivity score.
func (s *Service) Overview(events []model.ScheduledEvent, sessions []model.FocusSession, date time.Time) model.Overview {
	now := s.now()

	sessionsToday := make([]model.FocusSession, 0)
	focusTime := 0
	interruptions := 0
	for _, sess := range sessions {
		if !workhours.SameDay(sess.StartTime, date) {
			continue
		}
		sessionsToday = append(sessionsToday, sess)
		st := analytics.Stats(sess, now)
		focusTime += st.Duration
		interruptions += st.Interruptions
	}

	score := 0
	if len(sessionsToday) > 0 {
		score = 100 - 5*interruptions
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
	}

	return model.Overview{
		Date:              date,
		FocusTimeToday:    focusTime,
		UpcomingEvents:    s.UpcomingEvents(events, 120),
		EventsToday:       s.EventsForDate(events, date),
		SessionsToday:     sessionsToday,
		ProductivityScore: score,
	}
}

// ImportICS parses an iCalendar payload and returns only the events not
// already present in existing, deduplicating by source UID. Re-importing the
// same payload is therefore a no-op.
func (s *Service) ImportICS(existing []model.ScheduledEvent, text string, opts ics.ImportOptions) []model.ScheduledEvent {
	parsed := ics.Parse(text, opts, s.now())
	if len(parsed) == 0 {
		return nil
	}

	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		if e.Meta.SourceUID != "" {
			known[e.Meta.SourceUID] = true
		}
	}

	fresh := make([]model.ScheduledEvent, 0, len(parsed))
	for _, e := range parsed {
		if e.Meta.SourceUID != "" && known[e.Meta.SourceUID] {
			continue
		}
		fresh = append(fresh, e)
	}

	appLog.Info("calendar import", "parsed", len(parsed), "new", len(fresh), "already_known", len(parsed)-len(fresh))
	return fresh
}

// ExportICS serializes events back into an iCalendar payload.
func (s *Service) ExportICS(events []model.ScheduledEvent) (string, error) {
	return ics.Export(events)
}

// AddEvent appends a directly scheduled event, assigning it an id.
func (s *Service) AddEvent(events []model.ScheduledEvent, event model.ScheduledEvent) []model.ScheduledEvent {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return append(events, event)
}

// MarkCompleted flips the completed flag on the event with the given id.
func (s *Service) MarkCompleted(events []model.ScheduledEvent, id string) []model.ScheduledEvent {
	for i := range events {
		if events[i].ID == id {
			events[i].Completed = true
		}
	}
	return events
}

// IdleFor is the time elapsed since the last recorded activity.
func (s *Service) IdleFor(lastActivity time.Time) time.Duration {
	return s.now().Sub(lastActivity)
}

// ShouldAutoPause reports whether idle detection wants the current session
// paused: auto-tracking enabled, pause-on-idle set, and the idle time past
// the configured threshold.
func (s *Service) ShouldAutoPause(cfg model.CalendarConfig, lastActivity time.Time) bool {
	if !cfg.AutoTracking.Enabled || !cfg.AutoTracking.PauseOnIdle {
		return false
	}
	threshold := time.Duration(cfg.AutoTracking.DetectIdleMinutes) * time.Minute
	return threshold > 0 && s.IdleFor(lastActivity) >= threshold
}

// ValidateConfig checks the configuration as a unit and returns every
// problem found as a human-readable message. An empty result means the
// config may be applied; the validator itself applies nothing.
func (s *Service) ValidateConfig(cfg model.CalendarConfig) []string {
	errs := make([]string, 0)
	errs = append(errs, validateWorkingHours(cfg.WorkingHours)...)

	if cfg.Pomodoro.WorkDuration <= 0 {
		errs = append(errs, "work session duration must be greater than 0")
	}
	if cfg.Pomodoro.ShortBreakDuration <= 0 {
		errs = append(errs, "short break duration must be greater than 0")
	}
	if cfg.Pomodoro.LongBreakDuration <= 0 {
		errs = append(errs, "long break duration must be greater than 0")
	}
	if cfg.Pomodoro.SessionsUntilLongBreak <= 0 {
		errs = append(errs, "sessions until long break must be greater than 0")
	}

	if cfg.Notifications.UpcomingEventMinutes < 0 {
		errs = append(errs, "upcoming event notification minutes must be 0 or greater")
	}

	if cfg.AutoTracking.DetectIdleMinutes <= 0 {
		errs = append(errs, "idle detection time must be greater than 0")
	}

	return errs
}

func validateWorkingHours(h model.WorkingHours) []string {
	errs := make([]string, 0)

	if h.Start == "" || h.End == "" {
		errs = append(errs, "working hours start and end times are required")
	}

	if h.Start != "" && h.End != "" {
		start, serr := workhours.ParseClock(h.Start)
		if serr != nil {
			errs = append(errs, fmt.Sprintf("working hours start time %q is not a valid HH:MM clock time", h.Start))
		}
		end, eerr := workhours.ParseClock(h.End)
		if eerr != nil {
			errs = append(errs, fmt.Sprintf("working hours end time %q is not a valid HH:MM clock time", h.End))
		}
		if serr == nil && eerr == nil && start >= end {
			errs = append(errs, "working hours start time must be before the end time")
		}
	}

	if len(h.WorkDays) == 0 {
		errs = append(errs, "at least one work day must be selected")
	}
	for _, d := range h.WorkDays {
		if d < 0 || d > 6 {
			errs = append(errs, "work days must be between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}

	return errs
}
