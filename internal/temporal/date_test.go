package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfUsesLocalFields(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	// 23:30 local on Jan 31 is already Feb 1 in UTC.
	ts := time.Date(2025, time.January, 31, 23, 30, 0, 0, loc)
	assert.Equal(t, CalendarDate("2025-01-31"), DateOf(ts))
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		in   CalendarDate
		n    int
		want CalendarDate
	}{
		{"same month", "2025-03-10", 1, "2025-03-11"},
		{"month end", "2025-01-31", 1, "2025-02-01"},
		{"year end", "2024-12-31", 1, "2025-01-01"},
		{"back over month", "2025-03-01", -1, "2025-02-28"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
		{"back three", "2025-01-02", -3, "2024-12-30"},
		{"zero", "2025-06-15", 0, "2025-06-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.AddDays(tt.n))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-04")
	require.NoError(t, err)
	assert.Equal(t, CalendarDate("2025-07-04"), d)
	assert.True(t, d.Valid())

	_, err = ParseDate("2025-02-30")
	assert.Error(t, err)
	_, err = ParseDate("07/04/2025")
	assert.Error(t, err)
	assert.False(t, CalendarDate("nope").Valid())
}
