package ics

import (
	"strings"
	"time"
)

// decodeText reverses iCalendar TEXT escaping: a literal backslash-n becomes
// a newline, and escaped comma, semicolon, and backslash are unescaped. An
// unknown escape is kept verbatim.
func decodeText(v string) string {
	if !strings.Contains(v, "\\") {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i+1 >= len(v) {
			b.WriteByte(c)
			continue
		}
		i++
		switch v[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case ',', ';', '\\':
			b.WriteByte(v[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}

// parseTimestamp turns a DTSTART/DTEND value into an absolute instant. It
// first tries the two canonical compact forms, normalizing them into ISO
// shape before parsing; a trailing Z marks UTC and is re-appended after
// normalization. If structured normalization fails it falls back to a narrow
// set of ISO-8601 layouts; anything else is rejected rather than guessed.
// The second result reports date-only (all-day) interpretation.
func parseTimestamp(value string, params map[string]string) (time.Time, bool, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false, false
	}

	utc := strings.HasSuffix(v, "Z")
	compact := strings.TrimSuffix(v, "Z")

	// A VALUE=DATE parameter or a bare 8-digit value forces date-only
	// interpretation regardless of format ambiguity.
	forceDate := strings.EqualFold(params["VALUE"], "DATE") ||
		(len(compact) == 8 && isDigits(compact))

	if norm, dateOnly, ok := normalizeCompact(compact, forceDate); ok {
		if dateOnly {
			if t, err := time.ParseInLocation("2006-01-02", norm, time.Local); err == nil {
				return t, true, true
			}
		} else if utc {
			if t, err := time.Parse("2006-01-02T15:04:05Z07:00", norm+"Z"); err == nil {
				return t, false, true
			}
		} else {
			if t, err := time.ParseInLocation("2006-01-02T15:04:05", norm, time.Local); err == nil {
				return t, false, true
			}
		}
	}

	return parseLoose(v)
}

// normalizeCompact rewrites YYYYMMDD into YYYY-MM-DD and
// YYYYMMDDTHHMMSS (seconds optional) into YYYY-MM-DDTHH:MM:SS.
func normalizeCompact(v string, forceDate bool) (string, bool, bool) {
	datePart := v
	timePart := ""
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		datePart = v[:i]
		timePart = v[i+1:]
	}

	if len(datePart) != 8 || !isDigits(datePart) {
		return "", false, false
	}
	date := datePart[:4] + "-" + datePart[4:6] + "-" + datePart[6:8]

	if forceDate || timePart == "" {
		return date, true, true
	}

	if !isDigits(timePart) {
		return "", false, false
	}
	switch len(timePart) {
	case 6:
		return date + "T" + timePart[:2] + ":" + timePart[2:4] + ":" + timePart[4:6], false, true
	case 4:
		return date + "T" + timePart[:2] + ":" + timePart[2:4] + ":00", false, true
	}
	return "", false, false
}

// parseLoose is the explicit fallback for values the compact forms do not
// cover. It accepts ISO-8601 shapes only; locale-dependent orderings are
// rejected outright.
func parseLoose(v string) (time.Time, bool, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local); err == nil {
		return t, false, true
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, true, true
	}
	return time.Time{}, false, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseContact extracts a display string from an ORGANIZER/ATTENDEE value: a
// mailto: prefix is stripped from the address, and a CN parameter, when
// present, is combined as "Name <email>". With neither piece the field is
// omitted.
func parseContact(value string, params map[string]string) (string, bool) {
	email := strings.TrimSpace(value)
	if strings.HasPrefix(strings.ToLower(email), "mailto:") {
		email = email[len("mailto:"):]
	}
	email = strings.TrimSpace(email)

	name := strings.TrimSpace(decodeText(strings.Trim(params["CN"], `"`)))

	switch {
	case name != "" && email != "":
		return name + " <" + email + ">", true
	case name != "":
		return name, true
	case email != "":
		return email, true
	}
	return "", false
}
