package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddGoalAndGetDayPlan(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, err := s.AddGoal(ctx, AddGoalParams{Date: "2025-03-10", Text: "  write report  ", Category: "work"})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if g.ID == "" {
		t.Error("expected non-empty ID")
	}
	if g.Text != "write report" {
		t.Errorf("expected trimmed text, got %q", g.Text)
	}
	if g.Priority != "normal" {
		t.Errorf("expected default priority 'normal', got %q", g.Priority)
	}

	s.AddGoal(ctx, AddGoalParams{Date: "2025-03-10", Text: "run"})

	plan, err := s.GetDayPlan(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if plan == nil {
		t.Fatal("expected plan, got nil")
	}
	if len(plan.Goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(plan.Goals))
	}
	if plan.Goals[0].Text != "write report" || plan.Goals[1].Text != "run" {
		t.Errorf("goals out of creation order: %+v", plan.Goals)
	}
	if plan.Goals[1].Category != "other" {
		t.Errorf("expected default category 'other', got %q", plan.Goals[1].Category)
	}
}

func TestGetDayPlanAbsent(t *testing.T) {
	s := newTestStore(t)

	plan, err := s.GetDayPlan(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if plan != nil {
		t.Errorf("expected nil plan, got %+v", plan)
	}
}

func TestAddGoalValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cases := []AddGoalParams{
		{Date: "2025-13-01", Text: "x"},
		{Date: "2025-03-10", Text: "   "},
		{Date: "2025-03-10", Text: "x", Category: "chores"},
		{Date: "2025-03-10", Text: "x", Priority: "critical"},
	}
	for _, p := range cases {
		if _, err := s.AddGoal(ctx, p); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestSetGoalDone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, _ := s.AddGoal(ctx, AddGoalParams{Date: "2025-03-10", Text: "stretch"})

	done, err := s.SetGoalDone(ctx, g.ID, true)
	if err != nil {
		t.Fatalf("set done: %v", err)
	}
	if !done.Done || done.CompletedAt == nil {
		t.Errorf("expected done with completed_at, got %+v", done)
	}

	plan, _ := s.GetDayPlan(ctx, "2025-03-10")
	if plan.Completed() != 1 {
		t.Errorf("expected 1 completed, got %d", plan.Completed())
	}

	undone, err := s.SetGoalDone(ctx, g.ID, false)
	if err != nil {
		t.Fatalf("set undone: %v", err)
	}
	if undone.Done || undone.CompletedAt != nil {
		t.Errorf("expected not done, got %+v", undone)
	}
}

func TestSetGoalDoneMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SetGoalDone(context.Background(), "nope", true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveGoal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	g, _ := s.AddGoal(ctx, AddGoalParams{Date: "2025-03-10", Text: "call mom"})
	if err := s.RemoveGoal(ctx, g.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	plan, _ := s.GetDayPlan(ctx, "2025-03-10")
	if plan == nil {
		t.Fatal("plan row should survive goal removal")
	}
	if plan.HasGoals() {
		t.Errorf("expected empty plan, got %d goals", len(plan.Goals))
	}

	if err := s.RemoveGoal(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestListPlans(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, d := range []string{"2025-03-08", "2025-03-09", "2025-03-10"} {
		s.AddGoal(ctx, AddGoalParams{Date: d, Text: "goal " + d})
	}

	all, err := s.ListPlans(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(all))
	}
	if all[0].Date != "2025-03-10" {
		t.Errorf("expected newest first, got %s", all[0].Date)
	}

	ranged, _ := s.ListPlans(ctx, ListParams{From: "2025-03-09", To: "2025-03-09"})
	if len(ranged) != 1 || ranged[0].Date != "2025-03-09" {
		t.Errorf("expected only 2025-03-09, got %+v", ranged)
	}

	limited, _ := s.ListPlans(ctx, ListParams{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("expected 2 with limit, got %d", len(limited))
	}
}

func TestPutAndGetReflection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r, err := s.PutReflection(ctx, ReflectionParams{Date: "2025-03-09", Content: "good day", Mood: "good", Rating: 4})
	if err != nil {
		t.Fatalf("put reflection: %v", err)
	}
	if r.ID == "" || r.Mood != "good" || r.Rating != 4 {
		t.Errorf("unexpected reflection: %+v", r)
	}

	again, err := s.PutReflection(ctx, ReflectionParams{Date: "2025-03-09", Content: "rewrote it"})
	if err != nil {
		t.Fatalf("update reflection: %v", err)
	}
	if again.ID != r.ID {
		t.Errorf("expected upsert to keep id %s, got %s", r.ID, again.ID)
	}
	if again.Content != "rewrote it" || again.Mood != "" || again.Rating != 0 {
		t.Errorf("expected replaced fields, got %+v", again)
	}
}

func TestGetReflectionAbsent(t *testing.T) {
	s := newTestStore(t)
	r, err := s.GetReflection(context.Background(), "2025-03-09")
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil reflection, got %+v", r)
	}
}

func TestPutReflectionValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cases := []ReflectionParams{
		{Date: "yesterday", Content: "x"},
		{Date: "2025-03-09", Content: ""},
		{Date: "2025-03-09", Content: "x", Mood: "ecstatic"},
		{Date: "2025-03-09", Content: "x", Rating: 6},
	}
	for _, p := range cases {
		if _, err := s.PutReflection(ctx, p); err == nil {
			t.Errorf("expected error for %+v", p)
		}
	}
}

func TestReadsFailAfterClose(t *testing.T) {
	s := newTestStore(t)
	s.Close()

	if _, err := s.GetDayPlan(context.Background(), "2025-03-09"); err == nil {
		t.Error("expected error reading from closed store")
	}
	if _, err := s.GetReflection(context.Background(), "2025-03-09"); err == nil {
		t.Error("expected error reading from closed store")
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
