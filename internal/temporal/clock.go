package temporal

import "time"

// Clock provides the current time. Core code depends on this, not time.Now.
type Clock interface {
	Now() time.Time
}

// RealClock returns the host's local time.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed time.
func (c FixedClock) Now() time.Time { return c.T }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

var (
	_ Clock = RealClock{}
	_ Clock = FixedClock{}
	_ Clock = ClockFunc(nil)
)

// Reading is one consistent sample of the clock with the day offset applied.
type Reading struct {
	RawDate       CalendarDate `json:"raw_date"`
	EffectiveDate CalendarDate `json:"effective_date"`
	RawHour       int          `json:"raw_hour"`
	EffectiveHour int          `json:"effective_hour"`
}

// ClockSource reads the wall clock and applies a whole-day offset.
type ClockSource struct {
	clock  Clock
	offset int
}

// NewClockSource binds a clock to a day offset.
func NewClockSource(c Clock, dayOffset int) ClockSource {
	if c == nil {
		c = RealClock{}
	}
	return ClockSource{clock: c, offset: dayOffset}
}

// Read samples the clock once. Every field of the result comes from the
// same instant, so one operation never straddles midnight.
func (s ClockSource) Read() Reading {
	now := s.clock.Now()
	r := Reading{
		RawDate:       DateOf(now),
		RawHour:       now.Hour(),
		EffectiveHour: now.Hour(),
	}
	r.EffectiveDate = r.RawDate.AddDays(s.offset)
	if s.offset != 0 {
		// AddDate works on local fields; the hour only moves across a DST change.
		r.EffectiveHour = now.AddDate(0, 0, s.offset).Hour()
	}
	return r
}

// RawToday is the local date with no offset.
func (s ClockSource) RawToday() CalendarDate { return s.Read().RawDate }

// EffectiveToday is RawToday shifted by the day offset.
func (s ClockSource) EffectiveToday() CalendarDate { return s.Read().EffectiveDate }

// CurrentHour is the real wall-clock hour. The offset never moves it.
func (s ClockSource) CurrentHour() int { return s.Read().RawHour }

// EffectiveHour is the hour of the offset-shifted instant.
func (s ClockSource) EffectiveHour() int { return s.Read().EffectiveHour }
