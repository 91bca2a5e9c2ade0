package temporal

import (
	"context"
	"errors"
	"sync"

	"github.com/rcliao/dayplan/internal/model"
)

var errDiskGone = errors.New("disk gone")

// fakeReader is an in-memory collaborator that records the order of reads
// and can fail reads for selected dates.
type fakeReader struct {
	mu          sync.Mutex
	plans       map[string]*model.DayPlan
	reflections map[string]*model.Reflection
	failPlan    map[string]bool
	failRefl    map[string]bool
	calls       []string
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		plans:       map[string]*model.DayPlan{},
		reflections: map[string]*model.Reflection{},
		failPlan:    map[string]bool{},
		failRefl:    map[string]bool{},
	}
}

func (f *fakeReader) withGoals(date string, n int) *fakeReader {
	p := &model.DayPlan{Date: date}
	for i := 0; i < n; i++ {
		p.Goals = append(p.Goals, model.Goal{ID: date + "-g", Date: date, Text: "goal"})
	}
	f.plans[date] = p
	return f
}

func (f *fakeReader) withReflection(date string) *fakeReader {
	f.reflections[date] = &model.Reflection{Date: date, Content: "ok"}
	return f
}

func (f *fakeReader) GetDayPlan(_ context.Context, date string) (*model.DayPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "plan:"+date)
	if f.failPlan[date] {
		return nil, errDiskGone
	}
	return f.plans[date], nil
}

func (f *fakeReader) GetReflection(_ context.Context, date string) (*model.Reflection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "reflection:"+date)
	if f.failRefl[date] {
		return nil, errDiskGone
	}
	return f.reflections[date], nil
}

type readFailure struct {
	op   string
	date CalendarDate
	err  error
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu         sync.Mutex
	failures   []readFailure
	resolved   []Resolution
	classified []UrgencyLevel
}

func (o *recordingObserver) ReadFailed(_ context.Context, op string, date CalendarDate, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, readFailure{op: op, date: date, err: err})
}

func (o *recordingObserver) Resolved(_ context.Context, _ CalendarDate, res Resolution) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolved = append(o.resolved, res)
}

func (o *recordingObserver) Classified(_ context.Context, level UrgencyLevel) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.classified = append(o.classified, level)
}
