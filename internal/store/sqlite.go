package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/dayplan/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func newID() string {
	return ulid.Make().String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS day_plans (
		date       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id           TEXT PRIMARY KEY,
		date         TEXT NOT NULL REFERENCES day_plans(date),
		text         TEXT NOT NULL,
		category     TEXT NOT NULL DEFAULT 'other',
		priority     TEXT NOT NULL DEFAULT 'normal',
		done         INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		completed_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_goals_date ON goals(date);

	CREATE TABLE IF NOT EXISTS reflections (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL UNIQUE,
		content    TEXT NOT NULL,
		mood       TEXT,
		rating     INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", date)
	}
	return nil
}

func (s *SQLiteStore) AddGoal(ctx context.Context, p AddGoalParams) (*model.Goal, error) {
	if err := validateDate(p.Date); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(p.Text)
	if text == "" {
		return nil, fmt.Errorf("goal text is required")
	}
	category := p.Category
	if category == "" {
		category = "other"
	}
	if !model.ValidCategories[category] {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	priority := p.Priority
	if priority == "" {
		priority = "normal"
	}
	if !model.ValidPriorities[priority] {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}

	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO day_plans (date, created_at) VALUES (?, ?)`, p.Date, stamp); err != nil {
		return nil, fmt.Errorf("insert day plan: %w", err)
	}

	id := newID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO goals (id, date, text, category, priority, done, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		id, p.Date, text, category, priority, stamp); err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Goal{
		ID:        id,
		Date:      p.Date,
		Text:      text,
		Category:  category,
		Priority:  priority,
		CreatedAt: now.Truncate(time.Second),
	}, nil
}

func (s *SQLiteStore) SetGoalDone(ctx context.Context, id string, done bool) (*model.Goal, error) {
	var completedAt *string
	if done {
		stamp := time.Now().UTC().Format(time.RFC3339)
		completedAt = &stamp
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET done = ?, completed_at = ? WHERE id = ?`, done, completedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, text, category, priority, done, created_at, completed_at
		 FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *SQLiteStore) RemoveGoal(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetDayPlan(ctx context.Context, date string) (*model.DayPlan, error) {
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM day_plans WHERE date = ?`, date).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day plan: %w", err)
	}

	plan := &model.DayPlan{Date: date, Goals: []model.Goal{}}
	plan.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	goals, err := s.goalsFor(ctx, date)
	if err != nil {
		return nil, err
	}
	plan.Goals = append(plan.Goals, goals...)
	return plan, nil
}

func (s *SQLiteStore) goalsFor(ctx context.Context, date string) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, text, category, priority, done, created_at, completed_at
		 FROM goals WHERE date = ? ORDER BY created_at, id`, date)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) ListPlans(ctx context.Context, p ListParams) ([]model.DayPlan, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 30
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if p.From != "" {
		where = append(where, "date >= ?")
		args = append(args, p.From)
	}
	if p.To != "" {
		where = append(where, "date <= ?")
		args = append(args, p.To)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT date FROM day_plans WHERE %s ORDER BY date DESC LIMIT ?`,
		strings.Join(where, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			rows.Close()
			return nil, err
		}
		dates = append(dates, d)
	}
	rows.Close()

	plans := []model.DayPlan{}
	for _, d := range dates {
		plan, err := s.GetDayPlan(ctx, d)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			plans = append(plans, *plan)
		}
	}
	return plans, nil
}

func (s *SQLiteStore) PutReflection(ctx context.Context, p ReflectionParams) (*model.Reflection, error) {
	if err := validateDate(p.Date); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, fmt.Errorf("reflection content is required")
	}
	if p.Mood != "" && !model.ValidMoods[p.Mood] {
		return nil, fmt.Errorf("invalid mood %q", p.Mood)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return nil, fmt.Errorf("rating must be 1-5 or 0 for none, got %d", p.Rating)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)
	var mood *string
	if p.Mood != "" {
		mood = &p.Mood
	}
	var rating *int
	if p.Rating > 0 {
		rating = &p.Rating
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reflections (id, date, content, mood, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   content = excluded.content,
		   mood = excluded.mood,
		   rating = excluded.rating,
		   updated_at = excluded.updated_at`,
		newID(), p.Date, content, mood, rating, stamp, stamp)
	if err != nil {
		return nil, fmt.Errorf("upsert reflection: %w", err)
	}

	r, err := s.GetReflection(ctx, p.Date)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("reflection %s: %w", p.Date, ErrNotFound)
	}
	return r, nil
}

func (s *SQLiteStore) GetReflection(ctx context.Context, date string) (*model.Reflection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, content, mood, rating, created_at, updated_at
		 FROM reflections WHERE date = ?`, date)
	r, err := scanReflection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reflection: %w", err)
	}
	return &r, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row scanner) (model.Goal, error) {
	var g model.Goal
	var createdAt string
	var completedAt sql.NullString

	err := row.Scan(&g.ID, &g.Date, &g.Text, &g.Category, &g.Priority, &g.Done, &createdAt, &completedAt)
	if err != nil {
		return g, err
	}

	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		g.CompletedAt = &t
	}
	return g, nil
}

func scanReflection(row scanner) (model.Reflection, error) {
	var r model.Reflection
	var mood sql.NullString
	var rating sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.Date, &r.Content, &mood, &rating, &createdAt, &updatedAt)
	if err != nil {
		return r, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if mood.Valid {
		r.Mood = mood.String
	}
	if rating.Valid {
		r.Rating = int(rating.Int64)
	}
	return r, nil
}
