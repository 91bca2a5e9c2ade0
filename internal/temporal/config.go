package temporal

// DefaultWindowDays is how many days back ScanUnreflected looks when no
// window is given.
const DefaultWindowDays = 3

// Config holds the hour windows and the simulated day offset.
// Hours are 0-23 wall-clock; a window with start > end wraps past midnight.
type Config struct {
	ReflectionStartHour int `json:"reflection_start_hour"`
	ReflectionEndHour   int `json:"reflection_end_hour"`
	NightStartHour      int `json:"night_start_hour"`
	NightEndHour        int `json:"night_end_hour"`
	DayOffset           int `json:"day_offset"`
}

// DefaultConfig returns the built-in windows: reflection 20:00-00:00,
// night mode 00:00-06:00, no offset.
func DefaultConfig() Config {
	return Config{
		ReflectionStartHour: 20,
		ReflectionEndHour:   0,
		NightStartHour:      0,
		NightEndHour:        6,
		DayOffset:           0,
	}
}

// ConfigPatch is a partial update. Nil fields are left unchanged.
type ConfigPatch struct {
	ReflectionStartHour *int `json:"reflection_start_hour,omitempty"`
	ReflectionEndHour   *int `json:"reflection_end_hour,omitempty"`
	NightStartHour      *int `json:"night_start_hour,omitempty"`
	NightEndHour        *int `json:"night_end_hour,omitempty"`
	DayOffset           *int `json:"day_offset,omitempty"`
}

// Merge returns c with every non-nil field of p applied. Values are taken
// as given, out-of-range hours included.
func (c Config) Merge(p ConfigPatch) Config {
	if p.ReflectionStartHour != nil {
		c.ReflectionStartHour = *p.ReflectionStartHour
	}
	if p.ReflectionEndHour != nil {
		c.ReflectionEndHour = *p.ReflectionEndHour
	}
	if p.NightStartHour != nil {
		c.NightStartHour = *p.NightStartHour
	}
	if p.NightEndHour != nil {
		c.NightEndHour = *p.NightEndHour
	}
	if p.DayOffset != nil {
		c.DayOffset = *p.DayOffset
	}
	return c
}

// InReflectionWindow reports whether hour falls in [ReflectionStartHour, ReflectionEndHour).
func (c Config) InReflectionWindow(hour int) bool {
	return inWindow(hour, c.ReflectionStartHour, c.ReflectionEndHour)
}

// InNightMode reports whether hour falls in [NightStartHour, NightEndHour).
func (c Config) InNightMode(hour int) bool {
	return inWindow(hour, c.NightStartHour, c.NightEndHour)
}

// IsHourBeforeReflection reports whether hour is exactly one before the
// reflection window opens. A window opening at 0 is preceded by 23; an
// out-of-range start hour is never preceded by anything.
func (c Config) IsHourBeforeReflection(hour int) bool {
	start := c.ReflectionStartHour
	if start == 0 {
		return hour == 23
	}
	return start > 0 && start <= 23 && hour == start-1
}

// inWindow checks a half-open hour range. start == end is an empty window.
func inWindow(hour, start, end int) bool {
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}
