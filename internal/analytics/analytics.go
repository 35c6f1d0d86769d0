// Package analytics derives productivity aggregates from completed focus
// sessions and scheduled events. Everything here is recomputed on demand;
// none of the outputs are a source of truth.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"focuscal/internal/model"
	"focuscal/internal/workhours"
)

// SessionStats is the per-session breakdown used by the aggregates.
type SessionStats struct {
	Duration      int // minutes; live value for a still-running session
	Efficiency    int // 0-100
	Interruptions int
}

// Stats computes a session's duration, efficiency score, and interruption
// count. For a session that has not ended, the duration is measured up to
// now and is not authoritative.
func Stats(s model.FocusSession, now time.Time) SessionStats {
	var dur int
	if s.Ended() {
		dur = s.Duration
	} else {
		dur = int(now.Sub(s.StartTime).Minutes())
	}

	eff := 100
	if s.Interrupted {
		eff = 100 - 10*s.Meta.Interruptions
		if eff < 0 {
			eff = 0
		}
	}

	return SessionStats{Duration: dur, Efficiency: eff, Interruptions: s.Meta.Interruptions}
}

// GroupByDay buckets sessions by local calendar date ("YYYY-MM-DD").
func GroupByDay(sessions []model.FocusSession) map[string][]model.FocusSession {
	out := make(map[string][]model.FocusSession)
	for _, s := range sessions {
		key := workhours.DayKey(s.StartTime)
		out[key] = append(out[key], s)
	}
	return out
}

// DailyStatsFor aggregates one calendar day. Breaks taken counts completed
// break-type events scheduled that day; sessions themselves are never
// break-typed.
func DailyStatsFor(sessions []model.FocusSession, events []model.ScheduledEvent, date, now time.Time) model.DailyStats {
	total := 0
	completed := 0
	interruptions := 0
	for _, s := range sessions {
		if !workhours.SameDay(s.StartTime, date) {
			continue
		}
		st := Stats(s, now)
		total += st.Duration
		interruptions += st.Interruptions
		if s.Ended() {
			completed++
		}
	}

	breaks := 0
	for _, e := range events {
		if e.Type == model.EventBreak && e.Completed && workhours.SameDay(e.ScheduledTime, date) {
			breaks++
		}
	}

	return model.DailyStats{
		Date:              time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		TotalFocusTime:    total,
		SessionsCompleted: completed,
		BreaksTaken:       breaks,
		ProductivityScore: DailyScore(completed, interruptions),
	}
}

// DailyScore is 0 with no completed sessions that day, else 100 minus 5 per
// interruption, clamped to [0, 100].
func DailyScore(sessionsCompleted, interruptions int) int {
	if sessionsCompleted == 0 {
		return 0
	}
	score := 100 - 5*interruptions
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// WeeklyStatsFor aggregates the ISO week (Monday-anchored) containing date.
// The trend compares total focus time in the first half of the week against
// the second: up when the second half exceeds the first by more than 10%,
// down when it is more than 10% lower.
func WeeklyStatsFor(sessions []model.FocusSession, date time.Time) model.WeeklyStats {
	weekStart := workhours.WeekStart(date)
	weekEnd := workhours.WeekEnd(date)

	var week []model.FocusSession
	for _, s := range sessions {
		if !s.StartTime.Before(weekStart) && !s.StartTime.After(weekEnd) {
			week = append(week, s)
		}
	}

	total := 0
	completed := 0
	for _, s := range week {
		if s.Ended() {
			total += s.Duration
			completed++
		}
	}

	avg := 0.0
	if completed > 0 {
		avg = float64(total) / float64(completed)
	}

	mid := weekStart.Add(weekEnd.Sub(weekStart) / 2)
	firstHalf, secondHalf := 0, 0
	for _, s := range week {
		if s.StartTime.After(mid) {
			secondHalf += s.Duration
		} else {
			firstHalf += s.Duration
		}
	}

	trend := model.TrendStable
	switch {
	case float64(secondHalf) > float64(firstHalf)*1.1:
		trend = model.TrendUp
	case float64(secondHalf) < float64(firstHalf)*0.9:
		trend = model.TrendDown
	}

	return model.WeeklyStats{
		WeekStart:            weekStart,
		WeekEnd:              weekEnd,
		TotalFocusTime:       total,
		AverageSessionLength: avg,
		WorkingDaysCount:     7,
		ProductivityTrend:    trend,
	}
}

// Metrics summarizes session history: today's focus time, average completed
// session length, interruption totals, streaks, and an overall efficiency
// score penalizing interruptions per session.
func Metrics(sessions []model.FocusSession, now time.Time) model.FocusMetrics {
	totalToday := 0
	for _, s := range sessions {
		if workhours.SameDay(s.StartTime, now) {
			totalToday += Stats(s, now).Duration
		}
	}

	completedTotal := 0
	completedCount := 0
	interruptions := 0
	for _, s := range sessions {
		interruptions += s.Meta.Interruptions
		if s.Ended() {
			completedTotal += s.Duration
			completedCount++
		}
	}

	avg := 0.0
	if completedCount > 0 {
		avg = float64(completedTotal) / float64(completedCount)
	}

	eff := 0
	if len(sessions) > 0 {
		e := 100.0 - (float64(interruptions)/float64(len(sessions)))*20.0
		if e < 0 {
			e = 0
		}
		if e > 100 {
			e = 100
		}
		eff = int(e)
	}

	current, longest := Streaks(sessions)

	return model.FocusMetrics{
		TotalTimeToday:       totalToday,
		AverageSessionLength: avg,
		LongestStreak:        longest,
		CurrentStreak:        current,
		Interruptions:        interruptions,
		EfficiencyScore:      eff,
	}
}

// Streaks walks backward through the days with at least one completed
// session. The current streak is the run of consecutive calendar days ending
// at the most recent active day; the longest streak is the maximum run seen
// anywhere in the history.
func Streaks(sessions []model.FocusSession) (current, longest int) {
	daySet := make(map[string]bool)
	for _, s := range sessions {
		if s.Ended() {
			daySet[workhours.DayKey(s.StartTime)] = true
		}
	}
	if len(daySet) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(daySet))
	for k := range daySet {
		d, err := time.ParseInLocation("2006-01-02", k, time.Local)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	run := 1
	longest = 1
	current = 0
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
			continue
		}
		if current == 0 {
			current = run
		}
		if run > longest {
			longest = run
		}
		run = 1
	}
	if current == 0 {
		current = run
	}
	if run > longest {
		longest = run
	}
	return current, longest
}

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DetectPatterns buckets sessions by hour-of-day and weekday to find when
// the most focus time accumulates, and emits the two threshold
// recommendations where they apply.
func DetectPatterns(sessions []model.FocusSession) model.ProductivityPatterns {
	byHour := make(map[int]int)
	byDay := make(map[int]int)
	totalDur := 0

	for _, s := range sessions {
		byHour[s.StartTime.Hour()] += s.Duration
		byDay[int(s.StartTime.Weekday())] += s.Duration
		totalDur += s.Duration
	}

	bestHour, bestHourTotal := 9, 0
	for h, d := range byHour {
		if d > bestHourTotal {
			bestHour, bestHourTotal = h, d
		}
	}

	bestDay, bestDayTotal := 1, 0
	for wd, d := range byDay {
		if d > bestDayTotal {
			bestDay, bestDayTotal = wd, d
		}
	}

	avg := 0.0
	if len(sessions) > 0 {
		avg = float64(totalDur) / float64(len(sessions))
	}

	var recs []string
	if bestHour >= 9 && bestHour <= 11 {
		recs = append(recs, "You are most productive in the morning. Schedule important tasks in that window.")
	} else if bestHour >= 14 && bestHour <= 16 {
		recs = append(recs, "You are most productive in the afternoon. Reserve that window for complex work.")
	}
	if avg > 0 && avg < 20 {
		recs = append(recs, "Consider longer sessions to build deeper focus.")
	} else if avg > 60 {
		recs = append(recs, "Very long sessions can cause fatigue. Consider more frequent breaks.")
	}

	return model.ProductivityPatterns{
		BestTimeOfDay:        fmt.Sprintf("%02d:00", bestHour),
		MostProductiveDay:    dayNames[bestDay],
		AverageSessionLength: avg,
		Recommendations:      recs,
	}
}

// FormatDuration renders minutes as "45m", "2h", or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
