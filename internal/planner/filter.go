// Package planner — производное состояние списков заданий: статусы, фильтры,
// сортировка, сроки и раскладка по дням календаря.
package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

// Filter — состояние фильтров экрана заданий. Пустые поля означают «любой».
type Filter struct {
	Search   string
	CourseID int64
	Priority models.Priority
	Status   models.Status
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.CourseID == 0 && f.Priority == "" && f.Status == ""
}

func (f Filter) match(a models.Assignment, courseName string, now time.Time) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(a.Title), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) &&
			!strings.Contains(strings.ToLower(courseName), q) {
			return false
		}
	}
	if f.CourseID != 0 && a.CourseID != f.CourseID {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	if f.Status != "" && a.StatusAt(now) != f.Status {
		return false
	}
	return true
}

// Apply — отфильтровать и отсортировать задания. Исходный срез не меняется.
func Apply(assignments []models.Assignment, courses []models.Course, f Filter, now time.Time) []models.Assignment {
	names := make(map[int64]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	out := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if f.match(a, names[a.CourseID], now) {
			out = append(out, a)
		}
	}
	Sort(out, now)
	return out
}

// Sort — просроченные первыми, затем по сроку, при равном сроке high < medium < low.
func Sort(assignments []models.Assignment, now time.Time) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return Less(assignments[i], assignments[j], now)
	})
}

func Less(a, b models.Assignment, now time.Time) bool {
	ao := a.StatusAt(now) == models.StatusOverdue
	bo := b.StatusAt(now) == models.StatusOverdue
	if ao != bo {
		return ao
	}
	if !a.DueDate.Equal(b.DueDate) {
		return a.DueDate.Before(b.DueDate)
	}
	return a.Priority.Rank() < b.Priority.Rank()
}
