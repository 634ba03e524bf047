package scheduling

import "time"

// NepalTime is the single fixed zone every calendar date and slot time in
// the system is interpreted in.
var NepalTime = time.FixedZone("NPT", 5*3600+45*60)

const (
	// DateLayout is the wire format of scheduled dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of slot times of day.
	TimeLayout = "15:04"
	// BookingHorizonDays bounds how far ahead a session may be booked.
	BookingHorizonDays = 365
)

// Calendar answers pure date questions against Nepal local time. Now is
// injectable so admission rules stay testable at fixed instants.
type Calendar struct {
	Now func() time.Time
}

// NewCalendar returns a Calendar running on the system clock.
func NewCalendar() *Calendar {
	return &Calendar{Now: time.Now}
}

// Today returns midnight of the current Nepal calendar date.
func (c *Calendar) Today() time.Time {
	now := c.Now().In(NepalTime)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, NepalTime)
}

// IsPast reports whether date is strictly before the current Nepal
// calendar date.
func (c *Calendar) IsPast(date time.Time) bool {
	return date.Before(c.Today())
}

// WithinBookingHorizon reports whether today <= date <= today+365 days.
// Both boundary dates are bookable.
func (c *Calendar) WithinBookingHorizon(date time.Time) bool {
	today := c.Today()
	return !date.Before(today) && !date.After(today.AddDate(0, 0, BookingHorizonDays))
}

// SlotElapsed reports whether the slot starting at timeOfDay on date has
// already begun. Only meaningful for today; earlier dates are caught by
// IsPast first.
func (c *Calendar) SlotElapsed(date time.Time, timeOfDay string) bool {
	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return false
	}
	start := date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	return !start.After(c.Now().In(NepalTime))
}

// ParseDate parses a "2006-01-02" string as a Nepal local calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, NepalTime)
}

// ValidTimeOfDay reports whether s is a well-formed "15:04" value.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// FormatSessionTime renders a date and slot time for user-facing messages,
// e.g. "2 January, 3:04 PM".
func FormatSessionTime(date string, timeOfDay string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return "", err
	}
	at := d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	return at.Format("2 January, 3:04 PM"), nil
}
