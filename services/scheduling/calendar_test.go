package scheduling

import (
	"testing"
	"time"
)

// fixedCalendar pins the clock to 2025-03-05 10:30 Nepal time.
func fixedCalendar() *Calendar {
	return &Calendar{
		Now: func() time.Time {
			return time.Date(2025, 3, 5, 10, 30, 0, 0, NepalTime)
		},
	}
}

func TestIsPast(t *testing.T) {
	cal := fixedCalendar()

	yesterday, _ := ParseDate("2025-03-04")
	today, _ := ParseDate("2025-03-05")
	tomorrow, _ := ParseDate("2025-03-06")

	if !cal.IsPast(yesterday) {
		t.Errorf("expected yesterday to be past")
	}
	if cal.IsPast(today) {
		t.Errorf("expected today not to be past")
	}
	if cal.IsPast(tomorrow) {
		t.Errorf("expected tomorrow not to be past")
	}
}

func TestWithinBookingHorizon_Boundaries(t *testing.T) {
	cal := fixedCalendar()

	cases := []struct {
		date string
		want bool
	}{
		{"2025-03-04", false}, // yesterday
		{"2025-03-05", true},  // today is bookable
		{"2026-03-05", true},  // today + 365 is the last bookable date
		{"2026-03-06", false}, // today + 366
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate(%s) failed: %v", tc.date, err)
		}
		if got := cal.WithinBookingHorizon(d); got != tc.want {
			t.Errorf("WithinBookingHorizon(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestSlotElapsed(t *testing.T) {
	cal := fixedCalendar()
	today, _ := ParseDate("2025-03-05")

	if !cal.SlotElapsed(today, "09:00") {
		t.Errorf("expected 09:00 to have elapsed at 10:30")
	}
	if !cal.SlotElapsed(today, "10:30") {
		t.Errorf("expected a slot starting exactly now to count as elapsed")
	}
	if cal.SlotElapsed(today, "11:00") {
		t.Errorf("expected 11:00 not to have elapsed at 10:30")
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, s := range []string{"", "05-03-2025", "2025/03/05", "2025-13-40", "not a date"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", s)
		}
	}
}

func TestFormatSessionTime(t *testing.T) {
	got, err := FormatSessionTime("2025-03-10", "10:00")
	if err != nil {
		t.Fatalf("FormatSessionTime failed: %v", err)
	}
	want := "10 March, 10:00 AM"
	if got != want {
		t.Errorf("FormatSessionTime = %q, want %q", got, want)
	}
}
