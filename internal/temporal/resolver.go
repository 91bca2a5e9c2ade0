package temporal

import "context"

// Status tags whether a value came from storage or is a no-IO placeholder.
type Status string

const (
	// Provisional values were computed without reading storage and must be
	// replaced once the resolved value arrives.
	Provisional Status = "provisional"
	// Resolved values reflect storage as of the call.
	Resolved Status = "resolved"
)

// Rule names which branch of the resolution produced the date.
type Rule string

const (
	RuleDaytime      Rule = "daytime"
	RuleCarryover    Rule = "carryover"
	RulePlannedToday Rule = "planned_today"
	RuleDefault      Rule = "default"
	RuleNoIO         Rule = "no_io"
)

// Resolution is the smart "today" together with how it was reached.
type Resolution struct {
	Date   CalendarDate `json:"date"`
	Status Status       `json:"status"`
	Rule   Rule         `json:"rule"`
}

// IsProvisional reports whether the date is a placeholder.
func (r Resolution) IsProvisional() bool { return r.Status != Resolved }

// Resolve computes the effective "today" for planning and reflection.
//
// Outside night mode it is the effective calendar date. During night mode
// an unreflected yesterday with goals wins (carryover); only after that is
// ruled out does a plan for the calendar date matter. Reads are issued one
// at a time, in that order.
func Resolve(ctx context.Context, l *Lookup, r Reading, cfg Config) Resolution {
	today := r.EffectiveDate
	if !cfg.InNightMode(r.EffectiveHour) {
		return Resolution{Date: today, Status: Resolved, Rule: RuleDaytime}
	}

	yesterday := today.AddDays(-1)
	if l.Unresolved(ctx, yesterday) {
		return Resolution{Date: yesterday, Status: Resolved, Rule: RuleCarryover}
	}

	if l.Plan(ctx, today).HasGoals() {
		return Resolution{Date: today, Status: Resolved, Rule: RulePlannedToday}
	}
	return Resolution{Date: today, Status: Resolved, Rule: RuleDefault}
}

// ResolveFast returns the effective calendar date without touching storage.
// The result is always Provisional.
func ResolveFast(r Reading) Resolution {
	return Resolution{Date: r.EffectiveDate, Status: Provisional, Rule: RuleNoIO}
}
