package temporal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nightReading(date CalendarDate, hour int) Reading {
	return Reading{RawDate: date, EffectiveDate: date, RawHour: hour, EffectiveHour: hour}
}

func TestResolveDaytimeIgnoresStorage(t *testing.T) {
	cfg := DefaultConfig()
	reader := newFakeReader().withGoals("2025-03-09", 2)
	l := NewLookup(reader, nil)

	for h := cfg.NightEndHour; h < 24; h++ {
		res := Resolve(context.Background(), l, nightReading("2025-03-10", h), cfg)
		assert.Equal(t, CalendarDate("2025-03-10"), res.Date, "hour %d", h)
		assert.Equal(t, RuleDaytime, res.Rule)
		assert.Equal(t, Resolved, res.Status)
	}
	assert.Empty(t, reader.calls, "daytime must not read storage")
}

func TestResolveCarryoverUnreflectedYesterday(t *testing.T) {
	reader := newFakeReader().withGoals("2025-03-09", 1)
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-09"), res.Date)
	assert.Equal(t, RuleCarryover, res.Rule)
}

func TestResolveCarryoverWinsOverTodaysPlan(t *testing.T) {
	reader := newFakeReader().withGoals("2025-03-09", 1).withGoals("2025-03-10", 3)
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-09"), res.Date)
	assert.Equal(t, RuleCarryover, res.Rule)
	assert.Equal(t, []string{"plan:2025-03-09", "reflection:2025-03-09"}, reader.calls)
}

func TestResolveReflectedYesterdayWithTodaysPlan(t *testing.T) {
	reader := newFakeReader().
		withGoals("2025-03-09", 1).withReflection("2025-03-09").
		withGoals("2025-03-10", 1)
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-10"), res.Date)
	assert.Equal(t, RulePlannedToday, res.Rule)
	assert.Equal(t, []string{"plan:2025-03-09", "reflection:2025-03-09", "plan:2025-03-10"}, reader.calls)
}

func TestResolveDefaultWhenNothingStored(t *testing.T) {
	reader := newFakeReader()
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-10"), res.Date)
	assert.Equal(t, RuleDefault, res.Rule)
}

func TestResolveEmptyPlanYesterdayIsNotCarried(t *testing.T) {
	reader := newFakeReader().withGoals("2025-03-09", 0)
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 1), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-10"), res.Date)
	assert.NotContains(t, reader.calls, "reflection:2025-03-09")
}

func TestResolveAcrossMonthBoundary(t *testing.T) {
	reader := newFakeReader().withGoals("2025-02-28", 1)
	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-01", 3), DefaultConfig())
	assert.Equal(t, CalendarDate("2025-02-28"), res.Date)
}

func TestResolveWrappingNightWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NightStartHour, cfg.NightEndHour = 22, 4
	reader := newFakeReader().withGoals("2025-03-09", 1)

	res := Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 23), cfg)
	assert.Equal(t, RuleCarryover, res.Rule)

	res = Resolve(context.Background(), NewLookup(reader, nil), nightReading("2025-03-10", 4), cfg)
	assert.Equal(t, RuleDaytime, res.Rule)
}

func TestResolvePlanFaultIsAbsence(t *testing.T) {
	reader := newFakeReader().withGoals("2025-03-09", 1)
	reader.failPlan["2025-03-09"] = true
	obs := &recordingObserver{}

	res := Resolve(context.Background(), NewLookup(reader, obs), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-10"), res.Date)
	require.Len(t, obs.failures, 1)
	assert.Equal(t, OpGetDayPlan, obs.failures[0].op)
	assert.Equal(t, CalendarDate("2025-03-09"), obs.failures[0].date)
	assert.ErrorIs(t, obs.failures[0].err, errDiskGone)
}

func TestResolveReflectionFaultIsAbsence(t *testing.T) {
	// A failed reflection read counts as "no reflection", so yesterday is carried.
	reader := newFakeReader().withGoals("2025-03-09", 1).withReflection("2025-03-09")
	reader.failRefl["2025-03-09"] = true
	obs := &recordingObserver{}

	res := Resolve(context.Background(), NewLookup(reader, obs), nightReading("2025-03-10", 2), DefaultConfig())

	assert.Equal(t, CalendarDate("2025-03-09"), res.Date)
	require.Len(t, obs.failures, 1)
	assert.Equal(t, OpGetReflection, obs.failures[0].op)
}

func TestResolveIdempotent(t *testing.T) {
	reader := newFakeReader().withGoals("2025-03-09", 2)
	l := NewLookup(reader, nil)
	r := nightReading("2025-03-10", 2)

	first := Resolve(context.Background(), l, r, DefaultConfig())
	second := Resolve(context.Background(), l, r, DefaultConfig())
	assert.Equal(t, first, second)
}

func TestResolveFastIsProvisional(t *testing.T) {
	res := ResolveFast(nightReading("2025-03-10", 2))
	assert.Equal(t, CalendarDate("2025-03-10"), res.Date)
	assert.Equal(t, Provisional, res.Status)
	assert.True(t, res.IsProvisional())
	assert.Equal(t, RuleNoIO, res.Rule)
}
