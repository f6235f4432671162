package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

const day = 24 * time.Hour

// DaysUntil — число полных суток до срока, дробная часть отбрасывается.
func DaysUntil(due, now time.Time) int {
	return int(due.Sub(now) / day)
}

// CeilDaysUntil — сутки до срока с округлением вверх (список «ближайшие» в календаре).
func CeilDaysUntil(due, now time.Time) int {
	return int(math.Ceil(float64(due.Sub(now)) / float64(day)))
}

type Badge struct {
	Text string `json:"text"`
	Tone string `json:"tone"` // success | error | warning | default
}

// DueBadge — подпись срока на карточке задания.
func DueBadge(a models.Assignment, now time.Time) Badge {
	switch a.StatusAt(now) {
	case models.StatusCompleted:
		return Badge{Text: "Completed", Tone: "success"}
	case models.StatusOverdue:
		return Badge{Text: "Overdue", Tone: "error"}
	}
	d := DaysUntil(a.DueDate, now)
	switch {
	case d <= 0:
		return Badge{Text: "Due Today", Tone: "warning"}
	case d == 1:
		return Badge{Text: "Due in 1 day", Tone: "warning"}
	case d <= 3:
		return Badge{Text: fmt.Sprintf("Due in %d days", d), Tone: "warning"}
	}
	return Badge{Text: fmt.Sprintf("Due in %d days", d), Tone: "default"}
}

// DueSoon — не выполнено и срок в ближайшие days суток (включительно).
func DueSoon(a models.Assignment, now time.Time, days int) bool {
	if a.Completed {
		return false
	}
	d := DaysUntil(a.DueDate, now)
	return d >= 0 && d <= days && !a.DueDate.Before(now)
}

// Upcoming — ближайшие невыполненные задания в окне days суток, по сроку, не больше limit.
func Upcoming(assignments []models.Assignment, now time.Time, days, limit int) []models.Assignment {
	out := make([]models.Assignment, 0, limit)
	for _, a := range assignments {
		if DueSoon(a, now, days) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	DueSoon        int `json:"due_soon"`
	CompletionRate int `json:"completion_rate"` // %
}

// Summarize — счётчики для дашборда и шапки экрана заданий.
func Summarize(assignments []models.Assignment, now time.Time, soonDays int) Stats {
	var s Stats
	s.Total = len(assignments)
	for _, a := range assignments {
		switch a.StatusAt(now) {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusOverdue:
			s.Overdue++
		}
		if DueSoon(a, now, soonDays) {
			s.DueSoon++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Floor(float64(s.Completed)/float64(s.Total)*100 + 0.5))
	}
	return s
}
