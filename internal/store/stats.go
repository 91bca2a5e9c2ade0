package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string `json:"db_path"`
	DBSizeBytes    int64  `json:"db_size_bytes"`
	Days           int    `json:"days"`
	Goals          int    `json:"goals"`
	CompletedGoals int    `json:"completed_goals"`
	Reflections    int    `json:"reflections"`
	FirstDay       string `json:"first_day,omitempty"`
	LastDay        string `json:"last_day,omitempty"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM day_plans`).Scan(&st.Days); err != nil {
		return st, err
	}
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&st.Goals)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE done = 1`).Scan(&st.CompletedGoals)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reflections`).Scan(&st.Reflections)
	s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MIN(date), ''), COALESCE(MAX(date), '') FROM day_plans`).Scan(&st.FirstDay, &st.LastDay)

	return st, nil
}
