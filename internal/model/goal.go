package model

import (
	"time"
)

const (
	GoalStatusProgress  = "progress"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"
)

const (
	ProgressMin = 0
	ProgressMax = 100
)

// Categories lists the goal categories in display order.
var Categories = []string{
	"キャリア",
	"学習・教育",
	"健康・フィットネス",
	"ビジネス・起業",
	"趣味・特技",
	"社会貢献",
	"その他",
}

type Goal struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Deadline    time.Time `db:"deadline" json:"deadline"`
	Category    string    `db:"category" json:"category"`
	Progress    int       `db:"progress" json:"progress"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Joined from milestones (not a column)
	Milestones []*Milestone `db:"-" json:"milestones"`
}

func (g *Goal) IsCompleted() bool {
	return g.Status == GoalStatusCompleted
}

func (g *Goal) DescriptionText() string {
	if g.Description == nil {
		return ""
	}
	return *g.Description
}

// Clone returns a deep copy, milestones included.
func (g *Goal) Clone() *Goal {
	c := *g
	if g.Description != nil {
		d := *g.Description
		c.Description = &d
	}
	c.Milestones = make([]*Milestone, len(g.Milestones))
	for i, m := range g.Milestones {
		mc := *m
		c.Milestones[i] = &mc
	}
	return &c
}

func IsCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
