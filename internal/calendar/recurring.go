package calendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	appLog "focuscal/internal/log"
	"focuscal/internal/model"
)

// GenerateRecurring expands a base event into one event per occurrence:
// the date advances by the frequency unit times interval until the end date
// is exceeded. A zero until defaults to one year from now. An unknown
// frequency yields nothing.
func (s *Service) GenerateRecurring(base model.ScheduledEvent, freq model.Frequency, interval int, until time.Time) []model.ScheduledEvent {
	if interval <= 0 {
		interval = 1
	}
	hadUntil := !until.IsZero()
	if !hadUntil {
		until = s.now().AddDate(1, 0, 0)
	}

	var f rrule.Frequency
	switch freq {
	case model.FreqDaily:
		f = rrule.DAILY
	case model.FreqWeekly:
		f = rrule.WEEKLY
	case model.FreqMonthly:
		f = rrule.MONTHLY
	default:
		appLog.Error("recurring generation skipped", nil, "frequency", string(freq))
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     f,
		Interval: interval,
		Dtstart:  base.ScheduledTime,
		Until:    until,
	})
	if err != nil {
		appLog.Error("recurring rule construction failed", err, "frequency", string(freq), "interval", interval)
		return nil
	}

	descriptor := &model.RecurringRule{Frequency: freq, Interval: interval}
	if hadUntil {
		descriptor.EndDate = until
	}

	times := rule.All()
	out := make([]model.ScheduledEvent, 0, len(times))
	for _, t := range times {
		ev := base
		ev.ID = uuid.NewString()
		ev.ScheduledTime = t
		r := *descriptor
		ev.Recurring = &r
		out = append(out, ev)
	}
	return out
}
