package workhours

import (
	"testing"
	"time"

	"focuscal/internal/model"
)

var weekdayHours = model.WorkingHours{
	Start:    "09:00",
	End:      "18:00",
	Timezone: "America/Sao_Paulo",
	WorkDays: []int{1, 2, 3, 4, 5},
}

// 2024-01-15 is a Monday, 2024-01-13 a Saturday.
func localTime(day, hour, min int) time.Time {
	return time.Date(2024, time.January, day, hour, min, 0, 0, time.Local)
}

func TestWithin(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday morning", localTime(15, 10, 0), true},
		{"monday evening", localTime(15, 20, 0), false},
		{"saturday morning", localTime(13, 10, 0), false},
		{"start boundary inclusive", localTime(15, 9, 0), true},
		{"end boundary inclusive", localTime(15, 18, 0), true},
		{"just past end", localTime(15, 18, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Within(weekdayHours, tc.at); got != tc.want {
				t.Errorf("Within(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestWithin_MalformedClock(t *testing.T) {
	bad := model.WorkingHours{Start: "nine", End: "18:00", WorkDays: []int{1}}
	if Within(bad, localTime(15, 10, 0)) {
		t.Error("expected malformed start time to be treated as outside hours")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(weekdayHours, localTime(15, 14, 0)); got != 240 {
		t.Errorf("Remaining at Monday 14:00 = %d, want 240", got)
	}
	if got := Remaining(weekdayHours, localTime(15, 20, 0)); got != 0 {
		t.Errorf("Remaining at Monday 20:00 = %d, want 0", got)
	}
	if got := Remaining(weekdayHours, localTime(13, 10, 0)); got != 0 {
		t.Errorf("Remaining on Saturday = %d, want 0", got)
	}
}

func TestNextWorkingDay(t *testing.T) {
	// Friday the 12th -> Monday the 15th.
	next := NextWorkingDay(weekdayHours, localTime(12, 10, 0))
	if next.Day() != 15 || next.Weekday() != time.Monday {
		t.Errorf("next working day after Friday = %v, want Monday the 15th", next)
	}

	// Monday -> Tuesday, never the same day.
	next = NextWorkingDay(weekdayHours, localTime(15, 10, 0))
	if next.Day() != 16 {
		t.Errorf("next working day after Monday = %v, want the 16th", next)
	}
}

func TestNextWorkingDay_EmptyWeekdaySet(t *testing.T) {
	none := model.WorkingHours{Start: "09:00", End: "18:00"}
	next := NextWorkingDay(none, localTime(15, 10, 0))
	if next.Day() != 16 {
		t.Errorf("expected fallback to the following day, got %v", next)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q, want 09:00", got)
	}
	if got := FormatClock(1439); got != "23:59" {
		t.Errorf("FormatClock(1439) = %q, want 23:59", got)
	}
}

func TestWeekStart(t *testing.T) {
	// Wednesday the 17th and Sunday the 21st both belong to the week of
	// Monday the 15th.
	for _, day := range []int{15, 17, 21} {
		start := WeekStart(localTime(day, 13, 30))
		if start.Day() != 15 || start.Hour() != 0 || start.Weekday() != time.Monday {
			t.Errorf("WeekStart(day %d) = %v, want Monday the 15th 00:00", day, start)
		}
	}
}

func TestSameDay(t *testing.T) {
	if !SameDay(localTime(15, 0, 0), localTime(15, 23, 59)) {
		t.Error("expected same calendar date to match")
	}
	if SameDay(localTime(15, 23, 59), localTime(16, 0, 0)) {
		t.Error("expected different dates not to match")
	}
}
