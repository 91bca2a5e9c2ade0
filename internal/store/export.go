package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/dayplan/internal/model"
)

// Export is the JSON document produced by ExportAll and read by Import.
type Export struct {
	Plans       []model.DayPlan    `json:"plans"`
	Reflections []model.Reflection `json:"reflections"`
}

// ExportAll returns every plan and reflection, oldest first.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	out := &Export{Plans: []model.DayPlan{}, Reflections: []model.Reflection{}}

	rows, err := s.db.QueryContext(ctx, `SELECT date FROM day_plans ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("export plans: %w", err)
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

	for _, d := range dates {
		plan, err := s.GetDayPlan(ctx, d)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			out.Plans = append(out.Plans, *plan)
		}
	}

	rrows, err := s.db.QueryContext(ctx,
		`SELECT id, date, content, mood, rating, created_at, updated_at
		 FROM reflections ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("export reflections: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		r, err := scanReflection(rrows)
		if err != nil {
			return nil, err
		}
		out.Reflections = append(out.Reflections, r)
	}
	return out, rrows.Err()
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Goals       int `json:"goals"`
	Reflections int `json:"reflections"`
}

// Import loads an export. Goals whose ID already exists are skipped;
// reflections replace any existing one for the same date.
func (s *SQLiteStore) Import(ctx context.Context, e *Export) (*ImportResult, error) {
	res := &ImportResult{}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, p := range e.Plans {
		if err := validateDate(p.Date); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO day_plans (date, created_at) VALUES (?, ?)`,
			p.Date, formatTime(p.CreatedAt)); err != nil {
			return nil, fmt.Errorf("import plan %s: %w", p.Date, err)
		}
		for _, g := range p.Goals {
			id := g.ID
			if id == "" {
				id = newID()
			}
			var completedAt *string
			if g.CompletedAt != nil {
				c := formatTime(*g.CompletedAt)
				completedAt = &c
			}
			r, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO goals (id, date, text, category, priority, done, created_at, completed_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id, p.Date, g.Text, orDefault(g.Category, "other"), orDefault(g.Priority, "normal"),
				g.Done, formatTime(g.CreatedAt), completedAt)
			if err != nil {
				return nil, fmt.Errorf("import goal %s: %w", id, err)
			}
			if n, _ := r.RowsAffected(); n > 0 {
				res.Goals++
			}
		}
	}

	for _, r := range e.Reflections {
		if err := validateDate(r.Date); err != nil {
			return nil, err
		}
		id := r.ID
		if id == "" {
			id = newID()
		}
		var mood *string
		if r.Mood != "" {
			mood = &r.Mood
		}
		var rating *int
		if r.Rating > 0 {
			rating = &r.Rating
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reflections (id, date, content, mood, rating, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(date) DO UPDATE SET
			   content = excluded.content,
			   mood = excluded.mood,
			   rating = excluded.rating,
			   updated_at = excluded.updated_at`,
			id, r.Date, r.Content, mood, rating, formatTime(r.CreatedAt), formatTime(r.UpdatedAt)); err != nil {
			return nil, fmt.Errorf("import reflection %s: %w", r.Date, err)
		}
		res.Reflections++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
