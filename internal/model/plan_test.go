package model

import "testing"

func TestDayPlanHasGoals(t *testing.T) {
	var nilPlan *DayPlan
	if nilPlan.HasGoals() {
		t.Error("nil plan should not have goals")
	}
	if (&DayPlan{Date: "2025-01-01"}).HasGoals() {
		t.Error("empty plan should not have goals")
	}
	p := &DayPlan{Date: "2025-01-01", Goals: []Goal{{ID: "a"}}}
	if !p.HasGoals() {
		t.Error("expected plan with one goal to have goals")
	}
}

func TestDayPlanCompleted(t *testing.T) {
	p := &DayPlan{Goals: []Goal{{Done: true}, {Done: false}, {Done: true}}}
	if got := p.Completed(); got != 2 {
		t.Errorf("expected 2 completed, got %d", got)
	}
	var nilPlan *DayPlan
	if got := nilPlan.Completed(); got != 0 {
		t.Errorf("expected 0 for nil plan, got %d", got)
	}
}
