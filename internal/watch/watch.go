// Package watch re-evaluates urgency on a schedule and reports changes.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/rcliao/dayplan/internal/temporal"
)

// Event is one line of watch output.
type Event struct {
	At           time.Time                 `json:"at"`
	Date         temporal.CalendarDate     `json:"date"`
	Urgency      temporal.UrgencyLevel     `json:"urgency"`
	Presentation temporal.PresentationMode `json:"presentation"`
	Unreflected  []temporal.CalendarDate   `json:"unreflected"`
}

// Watcher polls a Service and writes an Event whenever the date, urgency
// or presentation differs from the previous check.
type Watcher struct {
	svc       *temporal.Service
	out       io.Writer
	log       *zap.Logger
	scheduler gocron.Scheduler

	mu   sync.Mutex
	last *Event
}

// New creates a Watcher writing JSON lines to out.
func New(svc *temporal.Service, out io.Writer, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{svc: svc, out: out, log: log.Named("watch")}
}

// Check evaluates once and reports whether an Event was written.
func (w *Watcher) Check(ctx context.Context) (bool, error) {
	d := w.svc.Diagnostics(ctx)
	ev := Event{
		At:           time.Now(),
		Date:         d.SmartDate,
		Urgency:      d.Urgency,
		Presentation: d.Presentation,
		Unreflected:  d.Unreflected,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last != nil && sameState(*w.last, ev) {
		return false, nil
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return false, err
	}
	if _, err := fmt.Fprintln(w.out, string(b)); err != nil {
		return false, fmt.Errorf("write event: %w", err)
	}
	w.last = &ev
	return true, nil
}

func sameState(a, b Event) bool {
	return a.Date == b.Date && a.Urgency == b.Urgency && a.Presentation == b.Presentation
}

// Start checks immediately and then every interval until Stop.
func (w *Watcher) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := w.Check(ctx); err != nil {
				w.log.Error("check failed", zap.Error(err))
			}
		}),
		gocron.WithName("urgency_watch"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		scheduler.Shutdown()
		return fmt.Errorf("schedule watch job: %w", err)
	}

	w.scheduler = scheduler
	scheduler.Start()
	w.log.Info("watching", zap.Duration("interval", interval))
	return nil
}

// Stop shuts the scheduler down.
func (w *Watcher) Stop() error {
	if w.scheduler == nil {
		return nil
	}
	return w.scheduler.Shutdown()
}
