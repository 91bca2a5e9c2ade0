package temporal

import "context"

// ScanUnreflected walks the windowDays days before today, most recent first,
// and returns those that have goals but no reflection. today itself is never
// included. windowDays <= 0 means DefaultWindowDays.
func ScanUnreflected(ctx context.Context, l *Lookup, today CalendarDate, windowDays int) []CalendarDate {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	days := []CalendarDate{}
	for i := 1; i <= windowDays; i++ {
		d := today.AddDays(-i)
		if l.Unresolved(ctx, d) {
			days = append(days, d)
		}
	}
	return days
}
