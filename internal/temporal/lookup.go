package temporal

import (
	"context"

	"github.com/rcliao/dayplan/internal/model"
)

// Reader is the storage collaborator. Both methods return (nil, nil) when
// the record does not exist; a non-nil error means the read itself failed.
type Reader interface {
	GetDayPlan(ctx context.Context, date string) (*model.DayPlan, error)
	GetReflection(ctx context.Context, date string) (*model.Reflection, error)
}

// Observer receives side-channel events from the core. Implementations must
// not block and must not panic.
type Observer interface {
	ReadFailed(ctx context.Context, op string, date CalendarDate, err error)
	Resolved(ctx context.Context, raw CalendarDate, res Resolution)
	Classified(ctx context.Context, level UrgencyLevel)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) ReadFailed(context.Context, string, CalendarDate, error) {}
func (NopObserver) Resolved(context.Context, CalendarDate, Resolution) {}
func (NopObserver) Classified(context.Context, UrgencyLevel) {}

// Read operation names passed to Observer.ReadFailed.
const (
	OpGetDayPlan    = "get_day_plan"
	OpGetReflection = "get_reflection"
)

// Lookup wraps a Reader with the fail-soft policy: a failed read is
// reported to the Observer and treated as absence for that call.
type Lookup struct {
	reader   Reader
	observer Observer
}

// NewLookup builds a Lookup. A nil observer discards fault reports.
func NewLookup(r Reader, o Observer) *Lookup {
	if o == nil {
		o = NopObserver{}
	}
	return &Lookup{reader: r, observer: o}
}

// Plan returns the day plan for d, or nil if absent or unreadable.
func (l *Lookup) Plan(ctx context.Context, d CalendarDate) *model.DayPlan {
	p, err := l.reader.GetDayPlan(ctx, d.String())
	if err != nil {
		l.observer.ReadFailed(ctx, OpGetDayPlan, d, err)
		return nil
	}
	return p
}

// Reflection returns the reflection for d, or nil if absent or unreadable.
func (l *Lookup) Reflection(ctx context.Context, d CalendarDate) *model.Reflection {
	r, err := l.reader.GetReflection(ctx, d.String())
	if err != nil {
		l.observer.ReadFailed(ctx, OpGetReflection, d, err)
		return nil
	}
	return r
}

// Unresolved reports whether d has at least one goal and no reflection.
// The reflection is only read when the plan qualifies.
func (l *Lookup) Unresolved(ctx context.Context, d CalendarDate) bool {
	if !l.Plan(ctx, d).HasGoals() {
		return false
	}
	return l.Reflection(ctx, d) == nil
}
