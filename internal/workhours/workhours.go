// Package workhours provides pure clock arithmetic over a WorkingHours
// configuration. Functions here assume the configuration has already been
// validated; malformed clock strings are treated as "outside working hours"
// rather than errors.
package workhours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"focuscal/internal/model"
)

// ParseClock converts an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.New("clock time out of range: " + s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight back into "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOfDay returns t's clock time expressed as minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Within reports whether at falls inside the working-hours window: its
// weekday is one of the configured work days and its clock time is inside
// [start, end], boundaries included.
func Within(h model.WorkingHours, at time.Time) bool {
	if !isWorkDay(h, at.Weekday()) {
		return false
	}
	start, err := ParseClock(h.Start)
	if err != nil {
		return false
	}
	end, err := ParseClock(h.End)
	if err != nil {
		return false
	}
	cur := MinutesOfDay(at)
	return cur >= start && cur <= end
}

// Remaining returns the minutes left until the end of the working window, or
// 0 when at is outside working hours.
func Remaining(h model.WorkingHours, at time.Time) int {
	if !Within(h, at) {
		return 0
	}
	end, err := ParseClock(h.End)
	if err != nil {
		return 0
	}
	if r := end - MinutesOfDay(at); r > 0 {
		return r
	}
	return 0
}

// NextWorkingDay returns the next calendar date after from whose weekday is a
// configured work day. With an empty weekday set it gives up after a full
// week and returns the following day unchanged.
func NextWorkingDay(h model.WorkingHours, from time.Time) time.Time {
	next := from.AddDate(0, 0, 1)
	for i := 0; i < 7; i++ {
		if isWorkDay(h, next.Weekday()) {
			return next
		}
		next = next.AddDate(0, 0, 1)
	}
	return from.AddDate(0, 0, 1)
}

func isWorkDay(h model.WorkingHours, wd time.Weekday) bool {
	for _, d := range h.WorkDays {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// WeekStart returns the Monday 00:00 of t's ISO week, in t's location.
func WeekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	// Sunday belongs to the week that started six days earlier.
	diff := day - 1
	if day == 0 {
		diff = 6
	}
	d := t.AddDate(0, 0, -diff)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the last instant of t's ISO week (Sunday 23:59:59).
func WeekEnd(t time.Time) time.Time {
	start := WeekStart(t)
	return start.AddDate(0, 0, 7).Add(-time.Second)
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey renders t's local calendar date as "YYYY-MM-DD", the key used for
// per-day grouping.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
