package model

import "time"

// SessionType classifies a focus session.
type SessionType string

const (
	SessionPomodoro SessionType = "pomodoro"
	SessionStudy    SessionType = "study"
	SessionWork     SessionType = "work"
)

// EventType classifies a scheduled event. Meeting and custom typically come
// from imported calendar data.
type EventType string

const (
	EventFlashcard EventType = "flashcard"
	EventBreak     EventType = "break"
	EventReminder  EventType = "reminder"
	EventCustom    EventType = "custom"
	EventMeeting   EventType = "meeting"
)

// Frequency is the recurrence unit of a recurring event.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// Trend classifies the week-over-half-week productivity direction.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// WorkingHours is the configured daily clock-time window and weekday set.
// Start/End are "HH:MM" strings; WorkDays uses 0=Sunday .. 6=Saturday.
// The value is immutable from the calculator's point of view.
type WorkingHours struct {
	Start    string `yaml:"start" json:"start"`
	End      string `yaml:"end" json:"end"`
	Timezone string `yaml:"timezone" json:"timezone"`
	WorkDays []int  `yaml:"work_days" json:"workDays"`
}

// SessionMeta carries the bookkeeping a session accumulates while running.
type SessionMeta struct {
	Interruptions int       `json:"interruptions,omitempty"`
	PausedAt      time.Time `json:"pausedAt,omitzero"`
	ResumedAt     time.Time `json:"resumedAt,omitzero"`
}

// FocusSession is a single focus/work tracking session. EndTime is the zero
// time while the session is still running; Duration (minutes) is only
// authoritative once EndTime is set.
type FocusSession struct {
	ID          string      `json:"id"`
	TaskID      string      `json:"taskId,omitempty"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime,omitzero"`
	Duration    int         `json:"duration"`
	Type        SessionType `json:"type"`
	Interrupted bool        `json:"interrupted"`
	Meta        SessionMeta `json:"meta,omitzero"`
}

// Ended reports whether the session has been finalized.
func (s FocusSession) Ended() bool { return !s.EndTime.IsZero() }

// RecurringRule describes how a recurring event repeats.
type RecurringRule struct {
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval"`
	EndDate   time.Time `json:"endDate,omitzero"`
}

// EventMeta holds import provenance for a scheduled event. Known fields are
// explicit; anything else an import encounters lands in Extra under a
// lower-cased property name. Empty fields stay empty rather than being
// padded with placeholders.
type EventMeta struct {
	Source      string            `json:"source,omitempty"`
	SourceUID   string            `json:"sourceUid,omitempty"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	Status      string            `json:"status,omitempty"`
	URL         string            `json:"url,omitempty"`
	Organizer   string            `json:"organizer,omitempty"`
	Attendees   []string          `json:"attendees,omitempty"`
	Categories  []string          `json:"categories,omitempty"`
	EndTime     time.Time         `json:"endTime,omitzero"`
	Timezone    string            `json:"timezone,omitempty"`
	AllDay      bool              `json:"isAllDay,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// ScheduledEvent is any point-in-time item shown on the calendar, whether
// created directly or imported.
type ScheduledEvent struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Type          EventType      `json:"type"`
	ScheduledTime time.Time      `json:"scheduledTime"`
	Recurring     *RecurringRule `json:"recurring,omitempty"`
	Meta          EventMeta      `json:"meta,omitzero"`
	Completed     bool           `json:"completed"`
}

// DailyStats is a derived per-day aggregate. Never a source of truth; it is
// recomputed from session history on demand.
type DailyStats struct {
	Date              time.Time `json:"date"`
	TotalFocusTime    int       `json:"totalFocusTime"` // minutes
	SessionsCompleted int       `json:"sessionsCompleted"`
	BreaksTaken       int       `json:"breaksTaken"`
	ProductivityScore int       `json:"productivityScore"` // 0-100
}

// WeeklyStats is a derived per-week aggregate, anchored to Monday.
type WeeklyStats struct {
	WeekStart            time.Time `json:"weekStart"`
	WeekEnd              time.Time `json:"weekEnd"`
	TotalFocusTime       int       `json:"totalFocusTime"` // minutes
	AverageSessionLength float64   `json:"averageSessionLength"`
	WorkingDaysCount     int       `json:"workingDaysCount"`
	ProductivityTrend    Trend     `json:"productivityTrend"`
}

// PomodoroSettings holds the pomodoro-style durations, all in minutes.
type PomodoroSettings struct {
	WorkDuration           int `yaml:"work_duration" json:"workDuration"`
	ShortBreakDuration     int `yaml:"short_break_duration" json:"shortBreakDuration"`
	LongBreakDuration      int `yaml:"long_break_duration" json:"longBreakDuration"`
	SessionsUntilLongBreak int `yaml:"sessions_until_long_break" json:"sessionsUntilLongBreak"`
}

// NotificationSettings holds notification timing preferences. Delivery itself
// is a caller concern.
type NotificationSettings struct {
	Enabled              bool `yaml:"enabled" json:"enabled"`
	UpcomingEventMinutes int  `yaml:"upcoming_event_minutes" json:"upcomingEventMinutes"`
	BreakReminders       bool `yaml:"break_reminders" json:"breakReminders"`
	FocusSessionEnd      bool `yaml:"focus_session_end" json:"focusSessionEnd"`
}

// AutoTrackingSettings holds idle-detection preferences.
type AutoTrackingSettings struct {
	Enabled           bool `yaml:"enabled" json:"enabled"`
	DetectIdleMinutes int  `yaml:"detect_idle_minutes" json:"detectIdleMinutes"`
	PauseOnIdle       bool `yaml:"pause_on_idle" json:"pauseOnIdle"`
}

// CalendarConfig is the full engine configuration, validated as a unit.
type CalendarConfig struct {
	WorkingHours  WorkingHours         `yaml:"working_hours" json:"workingHours"`
	Pomodoro      PomodoroSettings     `yaml:"pomodoro" json:"pomodoro"`
	Notifications NotificationSettings `yaml:"notifications" json:"notifications"`
	AutoTracking  AutoTrackingSettings `yaml:"auto_tracking" json:"autoTracking"`
}

// Overview is the plain record returned for direct display by a UI layer.
type Overview struct {
	Date              time.Time        `json:"date"`
	FocusTimeToday    int              `json:"focusTimeToday"` // minutes
	UpcomingEvents    []ScheduledEvent `json:"upcomingEvents"`
	EventsToday       []ScheduledEvent `json:"eventsToday"`
	SessionsToday     []FocusSession   `json:"sessionsToday"`
	ProductivityScore int              `json:"productivityScore"`
}

// FocusMetrics summarizes session history across all time.
type FocusMetrics struct {
	TotalTimeToday       int     `json:"totalTimeToday"` // minutes
	AverageSessionLength float64 `json:"averageSessionLength"`
	LongestStreak        int     `json:"longestStreak"`
	CurrentStreak        int     `json:"currentStreak"`
	Interruptions        int     `json:"interruptions"`
	EfficiencyScore      int     `json:"efficiencyScore"` // 0-100
}

// ProductivityPatterns is the output of pattern detection over session
// history.
type ProductivityPatterns struct {
	BestTimeOfDay        string   `json:"bestTimeOfDay"`
	MostProductiveDay    string   `json:"mostProductiveDay"`
	AverageSessionLength float64  `json:"averageSessionLength"`
	Recommendations      []string `json:"recommendations"`
}
