package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Rank задаёт порядок сортировки: high < medium < low < всё остальное.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusOverdue}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusOverdue
}

type Assignment struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	Grade       *float64  `json:"grade"`
	MaxPoints   float64   `json:"max_points"`
	CourseID    int64     `json:"course_id"`
}

// Graded — есть оценка и её можно перевести в проценты.
func (a Assignment) Graded() bool {
	return a.Grade != nil && a.MaxPoints > 0
}

// Percent — оценка в процентах (0–100); имеет смысл только при Graded().
func (a Assignment) Percent() float64 {
	if !a.Graded() {
		return 0
	}
	return *a.Grade / a.MaxPoints * 100
}

// StatusAt — статус на момент now: выполнено / просрочено / в работе.
func (a Assignment) StatusAt(now time.Time) Status {
	switch {
	case a.Completed:
		return StatusCompleted
	case a.DueDate.Before(now):
		return StatusOverdue
	}
	return StatusPending
}
