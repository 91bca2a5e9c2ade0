// Package model defines the goal, day plan and reflection data types.
package model

import "time"

// Goal is a single item the user wants to get done on a given day.
type Goal struct {
	ID          string     `json:"id"`
	Date        string     `json:"date"`
	Text        string     `json:"text"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	Done        bool       `json:"done"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// DayPlan groups the goals for one calendar date (YYYY-MM-DD, local time).
type DayPlan struct {
	Date      string    `json:"date"`
	Goals     []Goal    `json:"goals"`
	CreatedAt time.Time `json:"created_at"`
}

// HasGoals reports whether the plan exists and holds at least one goal.
func (p *DayPlan) HasGoals() bool {
	return p != nil && len(p.Goals) > 0
}

// Completed returns how many goals are done.
func (p *DayPlan) Completed() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, g := range p.Goals {
		if g.Done {
			n++
		}
	}
	return n
}

// Reflection is the user's end-of-day review. Its existence marks the date as resolved.
type Reflection struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidCategories are the allowed goal categories.
var ValidCategories = map[string]bool{
	"work":     true,
	"health":   true,
	"personal": true,
	"learning": true,
	"other":    true,
}

// ValidPriorities are the allowed goal priorities.
var ValidPriorities = map[string]bool{
	"low":    true,
	"normal": true,
	"high":   true,
}

// ValidMoods are the allowed reflection moods.
var ValidMoods = map[string]bool{
	"great": true,
	"good":  true,
	"okay":  true,
	"rough": true,
}
