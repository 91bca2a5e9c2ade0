package temporal

import "fmt"

// UrgencyLevel is how pressingly the user should be asked to reflect.
// Levels are totally ordered: none < upcoming < active < urgent < critical.
type UrgencyLevel string

const (
	UrgencyNone     UrgencyLevel = "none"
	UrgencyUpcoming UrgencyLevel = "upcoming"
	UrgencyActive   UrgencyLevel = "active"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyCritical UrgencyLevel = "critical"
)

// UrgencyLevels lists every level in ascending severity.
var UrgencyLevels = []UrgencyLevel{
	UrgencyNone,
	UrgencyUpcoming,
	UrgencyActive,
	UrgencyUrgent,
	UrgencyCritical,
}

// Validate checks that u is a known level.
func (u UrgencyLevel) Validate() error {
	switch u {
	case UrgencyNone, UrgencyUpcoming, UrgencyActive, UrgencyUrgent, UrgencyCritical:
		return nil
	default:
		return fmt.Errorf("invalid urgency level: %q", string(u))
	}
}

// Order returns the severity rank (0 = none). Unknown levels rank as none.
func (u UrgencyLevel) Order() int {
	for i, l := range UrgencyLevels {
		if l == u {
			return i
		}
	}
	return 0
}

// AtLeast reports whether u is as severe as other.
func (u UrgencyLevel) AtLeast(other UrgencyLevel) bool {
	return u.Order() >= other.Order()
}

// TimeCategory is a coarse part of the day.
type TimeCategory string

const (
	TimeMorning TimeCategory = "morning" // 06-12
	TimeDay     TimeCategory = "day"     // 12-18
	TimeEvening TimeCategory = "evening" // 18-22
	TimeNight   TimeCategory = "night"   // 22-06
)

// CategoryFor maps an hour to its part of the day.
func CategoryFor(hour int) TimeCategory {
	switch {
	case hour >= 6 && hour < 12:
		return TimeMorning
	case hour >= 12 && hour < 18:
		return TimeDay
	case hour >= 18 && hour < 22:
		return TimeEvening
	default:
		return TimeNight
	}
}

// Classify picks the urgency level. Rows are checked top-down, first match wins:
//
//	no unreflected days                   -> none
//	2+ unreflected days at night          -> critical
//	reflection window, 1+ unreflected     -> urgent
//	reflection window                     -> active
//	one hour before the reflection window -> upcoming
//	otherwise                             -> none
func Classify(unreflected []CalendarDate, category TimeCategory, inReflectionWindow, hourBeforeReflection bool) UrgencyLevel {
	n := len(unreflected)
	switch {
	case n == 0:
		return UrgencyNone
	case n >= 2 && category == TimeNight:
		return UrgencyCritical
	case inReflectionWindow && n >= 1:
		return UrgencyUrgent
	case inReflectionWindow:
		return UrgencyActive
	case hourBeforeReflection:
		return UrgencyUpcoming
	default:
		return UrgencyNone
	}
}
