package temporal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	estimateTTL     = 10 * time.Minute
	estimateCleanup = 20 * time.Minute
)

// Estimate is a value from a no-IO variant. Status is always Provisional:
// Value is the last resolved result for the same clock reading and config
// if one is cached, otherwise a default computed without storage.
type Estimate[T any] struct {
	Value  T      `json:"value"`
	Status Status `json:"status"`
	Cached bool   `json:"cached"`
}

// Diagnostics is a full snapshot of the resolver state for an operator
// debug surface. It is not meant for behavioral branching.
type Diagnostics struct {
	RawDate            CalendarDate     `json:"raw_date"`
	EffectiveDate      CalendarDate     `json:"effective_date"`
	RawHour            int              `json:"raw_hour"`
	EffectiveHour      int              `json:"effective_hour"`
	TimeCategory       TimeCategory     `json:"time_category"`
	InReflectionWindow bool             `json:"in_reflection_window"`
	InNightMode        bool             `json:"in_night_mode"`
	SmartDate          CalendarDate     `json:"smart_date"`
	Rule               Rule             `json:"rule"`
	Unreflected        []CalendarDate   `json:"unreflected"`
	Urgency            UrgencyLevel     `json:"urgency"`
	Presentation       PresentationMode `json:"presentation"`
	Config             Config           `json:"config"`
}

// Service owns the temporal config and answers "what day is it" questions
// against a storage Reader.
type Service struct {
	lookup     *Lookup
	clock      Clock
	observer   Observer
	templates  Templates
	windowDays int
	estimates  *cache.Cache

	mu  sync.RWMutex
	cfg Config
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithObserver sets the observability collaborator.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithWindowDays sets the scan window used for urgency.
func WithWindowDays(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.windowDays = n
		}
	}
}

// WithTemplates replaces the status message catalog.
func WithTemplates(t Templates) Option {
	return func(s *Service) { s.templates = t }
}

// NewService creates a Service reading from r, starting from cfg.
func NewService(r Reader, cfg Config, opts ...Option) *Service {
	s := &Service{
		clock:      RealClock{},
		observer:   NopObserver{},
		templates:  DefaultTemplates,
		windowDays: DefaultWindowDays,
		estimates:  cache.New(estimateTTL, estimateCleanup),
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	s.lookup = NewLookup(r, s.observer)
	return s
}

// Config returns a copy of the current config.
func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// UpdateConfig merges p into the config. Calls already in flight keep the
// snapshot they started with.
func (s *Service) UpdateConfig(p ConfigPatch) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = s.cfg.Merge(p)
	return s.cfg
}

// snapshot captures config and clock once per public operation.
func (s *Service) snapshot() (Config, Reading) {
	cfg := s.Config()
	return cfg, NewClockSource(s.clock, cfg.DayOffset).Read()
}

// ClockSource returns a ClockSource bound to the current day offset.
func (s *Service) ClockSource() ClockSource {
	return NewClockSource(s.clock, s.Config().DayOffset)
}

// EffectiveToday resolves the smart date against storage.
func (s *Service) EffectiveToday(ctx context.Context) Resolution {
	cfg, r := s.snapshot()
	return s.resolve(ctx, cfg, r)
}

// EffectiveTodayFast returns the last resolved date for this clock reading
// if cached, else the calendar date. It never reads storage.
func (s *Service) EffectiveTodayFast() Estimate[CalendarDate] {
	cfg, r := s.snapshot()
	if v, ok := s.estimates.Get(estimateKey("today", cfg, r, 0)); ok {
		return Estimate[CalendarDate]{Value: v.(Resolution).Date, Status: Provisional, Cached: true}
	}
	return Estimate[CalendarDate]{Value: ResolveFast(r).Date, Status: Provisional}
}

// UnreflectedDays scans the windowDays days before the effective date.
func (s *Service) UnreflectedDays(ctx context.Context, windowDays int) []CalendarDate {
	cfg, r := s.snapshot()
	return s.scan(ctx, cfg, r, windowDays)
}

// UnreflectedDaysFast returns the cached scan for this reading, or an empty list.
func (s *Service) UnreflectedDaysFast(windowDays int) Estimate[[]CalendarDate] {
	cfg, r := s.snapshot()
	return s.cachedScan(cfg, r, windowDays)
}

func (s *Service) cachedScan(cfg Config, r Reading, windowDays int) Estimate[[]CalendarDate] {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if v, ok := s.estimates.Get(estimateKey("unreflected", cfg, r, windowDays)); ok {
		days := append([]CalendarDate{}, v.([]CalendarDate)...)
		return Estimate[[]CalendarDate]{Value: days, Status: Provisional, Cached: true}
	}
	return Estimate[[]CalendarDate]{Value: []CalendarDate{}, Status: Provisional}
}

// Urgency classifies how urgently a reflection is needed.
func (s *Service) Urgency(ctx context.Context) UrgencyLevel {
	cfg, r := s.snapshot()
	return s.urgency(ctx, cfg, r, s.scan(ctx, cfg, r, s.windowDays))
}

// UrgencyFast classifies from the cached scan, or from an empty one.
func (s *Service) UrgencyFast() Estimate[UrgencyLevel] {
	cfg, r := s.snapshot()
	days := s.cachedScan(cfg, r, s.windowDays)
	level := Classify(days.Value, CategoryFor(r.EffectiveHour),
		cfg.InReflectionWindow(r.EffectiveHour), cfg.IsHourBeforeReflection(r.EffectiveHour))
	return Estimate[UrgencyLevel]{Value: level, Status: Provisional, Cached: days.Cached}
}

// PresentationMode maps the current urgency to a UI mode.
func (s *Service) PresentationMode(ctx context.Context) PresentationMode {
	return PresentationFor(s.Urgency(ctx))
}

// StatusMessage selects and renders the status line for the given goal counts.
func (s *Service) StatusMessage(ctx context.Context, total, completed int) Message {
	return s.status(ctx, max(total, 0), max(completed, 0))
}

// PlanStatusMessage is StatusMessage with a negative total or completed
// taken from the plan of the date it resolves, so counts and message share
// one clock reading.
func (s *Service) PlanStatusMessage(ctx context.Context, total, completed int) Message {
	return s.status(ctx, total, completed)
}

func (s *Service) status(ctx context.Context, total, completed int) Message {
	cfg, r := s.snapshot()
	res := s.resolve(ctx, cfg, r)
	level := s.urgency(ctx, cfg, r, s.scan(ctx, cfg, r, s.windowDays))
	reflected := s.lookup.Reflection(ctx, res.Date) != nil

	if total < 0 || completed < 0 {
		plan := s.lookup.Plan(ctx, res.Date)
		if total < 0 {
			total = 0
			if plan != nil {
				total = len(plan.Goals)
			}
		}
		if completed < 0 {
			completed = plan.Completed()
		}
	}

	key := MessageFor(level, total, completed, reflected)
	return Message{
		Date:         res.Date,
		Key:          key,
		Text:         s.templates.Render(key, total, completed),
		Total:        total,
		Completed:    completed,
		Urgency:      level,
		Presentation: PresentationFor(level),
	}
}

// Diagnostics collects every intermediate value from one clock reading.
func (s *Service) Diagnostics(ctx context.Context) Diagnostics {
	cfg, r := s.snapshot()
	res := s.resolve(ctx, cfg, r)
	days := s.scan(ctx, cfg, r, s.windowDays)
	level := s.urgency(ctx, cfg, r, days)

	return Diagnostics{
		RawDate:            r.RawDate,
		EffectiveDate:      r.EffectiveDate,
		RawHour:            r.RawHour,
		EffectiveHour:      r.EffectiveHour,
		TimeCategory:       CategoryFor(r.EffectiveHour),
		InReflectionWindow: cfg.InReflectionWindow(r.EffectiveHour),
		InNightMode:        cfg.InNightMode(r.EffectiveHour),
		SmartDate:          res.Date,
		Rule:               res.Rule,
		Unreflected:        days,
		Urgency:            level,
		Presentation:       PresentationFor(level),
		Config:             cfg,
	}
}

func (s *Service) resolve(ctx context.Context, cfg Config, r Reading) Resolution {
	res := Resolve(ctx, s.lookup, r, cfg)
	s.estimates.SetDefault(estimateKey("today", cfg, r, 0), res)
	s.observer.Resolved(ctx, r.RawDate, res)
	return res
}

func (s *Service) scan(ctx context.Context, cfg Config, r Reading, windowDays int) []CalendarDate {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	days := ScanUnreflected(ctx, s.lookup, r.EffectiveDate, windowDays)
	s.estimates.SetDefault(estimateKey("unreflected", cfg, r, windowDays), append([]CalendarDate{}, days...))
	return days
}

func (s *Service) urgency(ctx context.Context, cfg Config, r Reading, days []CalendarDate) UrgencyLevel {
	h := r.EffectiveHour
	level := Classify(days, CategoryFor(h), cfg.InReflectionWindow(h), cfg.IsHourBeforeReflection(h))
	s.observer.Classified(ctx, level)
	return level
}

func estimateKey(kind string, cfg Config, r Reading, windowDays int) string {
	return fmt.Sprintf("%s|%s|%d|%d|%+v", kind, r.EffectiveDate, r.EffectiveHour, windowDays, cfg)
}
