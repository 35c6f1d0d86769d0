package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"focuscal/internal/model"
)

// Export serializes scheduled events into an iCalendar payload. Events keep
// their original source UID when they were imported; locally created events
// use their own id.
func Export(events []model.ScheduledEvent) (string, error) {
	if len(events) == 0 {
		return "", errors.New("no events to export")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//focuscal//calendar//EN")

	for _, ev := range events {
		uid := ev.Meta.SourceUID
		if uid == "" {
			uid = ev.ID
		}

		ve := cal.AddEvent(uid)
		ve.SetDtStampTime(time.Now().UTC())
		ve.SetSummary(ev.Title)

		if ev.Meta.AllDay {
			ve.SetAllDayStartAt(ev.ScheduledTime)
		} else {
			ve.SetStartAt(ev.ScheduledTime)
		}
		if !ev.Meta.EndTime.IsZero() {
			ve.SetEndAt(ev.Meta.EndTime)
		}

		if ev.Meta.Description != "" {
			ve.SetDescription(ev.Meta.Description)
		}
		if ev.Meta.Location != "" {
			ve.SetLocation(ev.Meta.Location)
		}
		if ev.Meta.URL != "" {
			ve.SetURL(ev.Meta.URL)
		}
		if ev.Meta.Organizer != "" {
			ve.SetOrganizer(ev.Meta.Organizer)
		}
		for _, a := range ev.Meta.Attendees {
			ve.AddAttendee(a)
		}
		if len(ev.Meta.Categories) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.Join(ev.Meta.Categories, ","))
		} else if ev.Type != "" {
			ve.SetProperty(ical.ComponentPropertyCategories, string(ev.Type))
		}
	}

	return cal.Serialize(), nil
}
