// Package ics imports and exports calendar data in the iCalendar text
// format. The import side is deliberately lenient: externally-authored
// exports are full of oddities, so parsing degrades to a partial or empty
// result instead of failing.
package ics

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appLog "focuscal/internal/log"
	"focuscal/internal/model"
)

// ImportOptions controls how a calendar payload is turned into events.
type ImportOptions struct {
	// SkipPastEvents discards events that already ended before the
	// reference instant. Nil means true.
	SkipPastEvents *bool

	// DefaultEventType is the classification used when neither the
	// category map nor the break keywords match. Empty means meeting,
	// the usual shape of imported calendar data.
	DefaultEventType model.EventType

	// CategoryTypeMap overrides classification by category label,
	// matched case-insensitively.
	CategoryTypeMap map[string]model.EventType
}

func (o ImportOptions) skipPast() bool {
	return o.SkipPastEvents == nil || *o.SkipPastEvents
}

func (o ImportOptions) defaultType() model.EventType {
	if o.DefaultEventType == "" {
		return model.EventMeeting
	}
	return o.DefaultEventType
}

// Bool is a convenience for filling ImportOptions.SkipPastEvents.
func Bool(v bool) *bool { return &v }

// rawEvent accumulates the properties of one VEVENT block before it is
// turned into a ScheduledEvent.
type rawEvent struct {
	uid         string
	summary     string
	description string
	location    string
	status      string
	url         string
	categories  []string
	organizer   string
	attendees   []string

	start    time.Time
	hasStart bool
	end      time.Time
	hasEnd   bool
	allDay   bool
	startTZ  string

	extra map[string]string
}

// Parse converts an iCalendar payload into scheduled events. It never fails:
// malformed lines are skipped, events without a usable start timestamp are
// dropped, and duplicate UIDs within the payload are ignored after their
// first occurrence. now anchors the past-event cutoff.
func Parse(text string, opts ImportOptions, now time.Time) []model.ScheduledEvent {
	lines := unfold(text)

	events := make([]model.ScheduledEvent, 0)
	seen := make(map[string]bool)
	dropped := 0

	var cur *rawEvent
	for _, line := range lines {
		marker := strings.ToUpper(strings.TrimSpace(line))
		switch marker {
		case "BEGIN:VEVENT":
			cur = &rawEvent{}
			continue
		case "END:VEVENT":
			if cur == nil {
				continue
			}
			if ev, ok := finalize(cur, opts, now, seen); ok {
				events = append(events, ev)
			} else {
				dropped++
			}
			cur = nil
			continue
		}
		if cur == nil {
			// Lines outside an event block carry nothing we need.
			continue
		}
		name, params, value, ok := splitProperty(line)
		if !ok {
			continue
		}
		applyProperty(cur, name, params, value)
	}

	appLog.Info("ics import completed", "imported", len(events), "dropped", dropped)
	return events
}

// unfold normalizes line endings and joins continuation lines (leading space
// or tab) onto their predecessor, per RFC 5545 folding. This must run before
// any property is interpreted.
func unfold(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	raw := strings.Split(normalized, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if len(out) > 0 && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			out[len(out)-1] += line[1:]
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitProperty splits an unfolded content line at the first colon into the
// property name, its parameters, and the value. Lines without a colon are
// not properties; the caller skips them.
func splitProperty(line string) (name string, params map[string]string, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", nil, "", false
	}
	lhs := line[:idx]
	value = line[idx+1:]

	segs := strings.Split(lhs, ";")
	name = strings.ToUpper(strings.TrimSpace(segs[0]))
	if name == "" {
		return "", nil, "", false
	}

	params = make(map[string]string)
	for _, seg := range segs[1:] {
		eq := strings.Index(seg, "=")
		if eq < 0 {
			continue
		}
		// Parameter names are case-insensitive.
		params[strings.ToUpper(strings.TrimSpace(seg[:eq]))] = seg[eq+1:]
	}
	return name, params, value, true
}

func applyProperty(cur *rawEvent, name string, params map[string]string, value string) {
	switch name {
	case "UID":
		if cur.uid == "" {
			cur.uid = strings.TrimSpace(value)
		}
	case "SUMMARY":
		cur.summary = value
	case "DESCRIPTION":
		cur.description = decodeText(value)
	case "LOCATION":
		cur.location = decodeText(value)
	case "STATUS":
		cur.status = strings.TrimSpace(value)
	case "URL":
		cur.url = strings.TrimSpace(value)
	case "CATEGORIES":
		for _, part := range strings.Split(value, ",") {
			c := strings.TrimSpace(decodeText(part))
			if c != "" {
				cur.categories = append(cur.categories, c)
			}
		}
	case "DTSTART":
		if t, allDay, ok := parseTimestamp(value, params); ok {
			cur.start = t
			cur.hasStart = true
			cur.allDay = allDay
			cur.startTZ = params["TZID"]
		}
	case "DTEND":
		if t, _, ok := parseTimestamp(value, params); ok {
			cur.end = t
			cur.hasEnd = true
		}
	case "ORGANIZER":
		if c, ok := parseContact(value, params); ok {
			cur.organizer = c
		}
	case "ATTENDEE":
		if c, ok := parseContact(value, params); ok {
			cur.attendees = append(cur.attendees, c)
		}
	default:
		// Unrecognized properties are kept under a lower-cased key;
		// the first occurrence wins.
		key := strings.ToLower(name)
		if cur.extra == nil {
			cur.extra = make(map[string]string)
		}
		if _, exists := cur.extra[key]; !exists {
			cur.extra[key] = value
		}
	}
}

// finalize applies the skip/dedup policy to an assembled block and converts
// it into a ScheduledEvent.
func finalize(cur *rawEvent, opts ImportOptions, now time.Time, seen map[string]bool) (model.ScheduledEvent, bool) {
	if cur.uid != "" {
		if seen[cur.uid] {
			appLog.Debug("ics event skipped", "reason", "duplicate uid", "uid", cur.uid)
			return model.ScheduledEvent{}, false
		}
		seen[cur.uid] = true
	}

	// An end timestamp without a start is provenance only, never a
	// scheduling anchor.
	if !cur.hasStart {
		appLog.Debug("ics event skipped", "reason", "missing start", "uid", cur.uid)
		return model.ScheduledEvent{}, false
	}

	if opts.skipPast() {
		ref := cur.start
		if cur.hasEnd {
			ref = cur.end
		}
		if ref.Before(now) {
			appLog.Debug("ics event skipped", "reason", "past event", "uid", cur.uid)
			return model.ScheduledEvent{}, false
		}
	}

	meta := model.EventMeta{
		Source:      "ics",
		SourceUID:   cur.uid,
		Description: cur.description,
		Location:    cur.location,
		Status:      cur.status,
		URL:         cur.url,
		Organizer:   cur.organizer,
		Attendees:   cur.attendees,
		Categories:  cur.categories,
		Timezone:    cur.startTZ,
		AllDay:      cur.allDay,
		Extra:       cur.extra,
	}
	if cur.hasEnd {
		meta.EndTime = cur.end
	}

	return model.ScheduledEvent{
		ID:            uuid.NewString(),
		Title:         cur.summary,
		Type:          resolveType(cur.categories, cur.summary, opts),
		ScheduledTime: cur.start,
		Meta:          meta,
	}, true
}

// breakKeywords classify an event as a break when found in a category or the
// title, case-insensitively. English plus the Portuguese variants the
// product's users enter.
var breakKeywords = []string{"break", "pausa", "descanso", "intervalo"}

func resolveType(categories []string, title string, opts ImportOptions) model.EventType {
	for _, c := range categories {
		for label, typ := range opts.CategoryTypeMap {
			if strings.EqualFold(label, c) {
				return typ
			}
		}
	}

	for _, c := range categories {
		if containsBreakKeyword(c) {
			return model.EventBreak
		}
	}
	if containsBreakKeyword(title) {
		return model.EventBreak
	}

	return opts.defaultType()
}

func containsBreakKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range breakKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
