package temporal

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// CalendarDate is a local calendar day in YYYY-MM-DD form.
type CalendarDate string

// DateOf returns the calendar date of t using t's own wall-clock fields.
// It never normalizes to UTC first.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate(fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()))
}

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays shifts d by n calendar days. Month and year rollover come from
// time.Date normalization.
func (d CalendarDate) AddDays(n int) CalendarDate {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return DateOf(time.Date(t.Year(), t.Month(), t.Day()+n, 12, 0, 0, 0, time.Local))
}

// Valid reports whether d is a well-formed date.
func (d CalendarDate) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

func (d CalendarDate) String() string {
	return string(d)
}
