// Package observe implements temporal.Observer over zap and prometheus.
package observe

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rcliao/dayplan/internal/temporal"
)

// Logger reports core events through zap. Faults are warnings; resolutions
// and classifications are debug.
type Logger struct {
	log *zap.Logger
}

// NewLogger wraps log. A nil logger discards everything.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("temporal")}
}

func (l *Logger) ReadFailed(_ context.Context, op string, date temporal.CalendarDate, err error) {
	l.log.Warn("storage read failed, treating as absent",
		zap.String("op", op),
		zap.String("date", date.String()),
		zap.Error(err))
}

func (l *Logger) Resolved(_ context.Context, raw temporal.CalendarDate, res temporal.Resolution) {
	l.log.Debug("resolved effective today",
		zap.String("raw_date", raw.String()),
		zap.String("resolved", res.Date.String()),
		zap.String("rule", string(res.Rule)))
}

func (l *Logger) Classified(_ context.Context, level temporal.UrgencyLevel) {
	l.log.Debug("classified urgency", zap.String("urgency", string(level)))
}

// Metrics counts core events in prometheus.
type Metrics struct {
	resolutions *prometheus.CounterVec
	faults      *prometheus.CounterVec
	urgency     *prometheus.CounterVec
}

// NewMetrics registers the dayplan counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayplan_resolutions_total",
			Help: "Smart date resolutions by rule.",
		}, []string{"rule"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayplan_collaborator_faults_total",
			Help: "Storage reads that failed and were treated as absent.",
		}, []string{"op"}),
		urgency: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayplan_urgency_total",
			Help: "Urgency classifications by level.",
		}, []string{"level"}),
	}
	if reg != nil {
		reg.MustRegister(m.resolutions, m.faults, m.urgency)
	}
	return m
}

func (m *Metrics) ReadFailed(_ context.Context, op string, _ temporal.CalendarDate, _ error) {
	m.faults.WithLabelValues(op).Inc()
}

func (m *Metrics) Resolved(_ context.Context, _ temporal.CalendarDate, res temporal.Resolution) {
	m.resolutions.WithLabelValues(string(res.Rule)).Inc()
}

func (m *Metrics) Classified(_ context.Context, level temporal.UrgencyLevel) {
	m.urgency.WithLabelValues(string(level)).Inc()
}

// Multi fans events out to several observers in order.
type Multi []temporal.Observer

func (m Multi) ReadFailed(ctx context.Context, op string, date temporal.CalendarDate, err error) {
	for _, o := range m {
		o.ReadFailed(ctx, op, date, err)
	}
}

func (m Multi) Resolved(ctx context.Context, raw temporal.CalendarDate, res temporal.Resolution) {
	for _, o := range m {
		o.Resolved(ctx, raw, res)
	}
}

func (m Multi) Classified(ctx context.Context, level temporal.UrgencyLevel) {
	for _, o := range m {
		o.Classified(ctx, level)
	}
}

var (
	_ temporal.Observer = (*Logger)(nil)
	_ temporal.Observer = (*Metrics)(nil)
	_ temporal.Observer = Multi(nil)
)
