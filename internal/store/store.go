// Package store provides day plan, goal and reflection storage and its SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/dayplan/internal/model"
)

// ErrNotFound is returned by mutations that target a missing row.
// Reads of a day plan or reflection return (nil, nil) instead.
var ErrNotFound = errors.New("not found")

// AddGoalParams holds parameters for adding a goal to a day.
type AddGoalParams struct {
	Date     string
	Text     string
	Category string
	Priority string
}

// ReflectionParams holds parameters for saving a reflection.
type ReflectionParams struct {
	Date    string
	Content string
	Mood    string
	Rating  int
}

// ListParams holds parameters for listing day plans.
type ListParams struct {
	From  string // inclusive, empty means unbounded
	To    string // inclusive, empty means unbounded
	Limit int
}

// Store defines the plan storage interface.
type Store interface {
	// AddGoal appends a goal, creating the day plan on first use.
	AddGoal(ctx context.Context, p AddGoalParams) (*model.Goal, error)

	// SetGoalDone marks a goal done or not done.
	SetGoalDone(ctx context.Context, id string, done bool) (*model.Goal, error)

	// RemoveGoal deletes a goal.
	RemoveGoal(ctx context.Context, id string) error

	// GetDayPlan returns the plan for date, or nil if there is none.
	GetDayPlan(ctx context.Context, date string) (*model.DayPlan, error)

	// ListPlans lists plans newest first.
	ListPlans(ctx context.Context, p ListParams) ([]model.DayPlan, error)

	// PutReflection creates or replaces the reflection for a date.
	PutReflection(ctx context.Context, p ReflectionParams) (*model.Reflection, error)

	// GetReflection returns the reflection for date, or nil if there is none.
	GetReflection(ctx context.Context, date string) (*model.Reflection, error)

	// Close closes the store.
	Close() error
}
