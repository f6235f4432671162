package planner

import (
	"sort"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

// PerDay — сколько заданий показывается в ячейке дня, остальное уходит в «+N more».
const PerDay = 3

type Day struct {
	Date        time.Time           `json:"date"`
	InMonth     bool                `json:"in_month"`
	Today       bool                `json:"today"`
	Assignments []models.Assignment `json:"assignments"`
	More        int                 `json:"more"`
	TotalOnDay  int                 `json:"total"`
}

type Month struct {
	Start time.Time `json:"start"`
	Weeks [][]Day   `json:"weeks"`
	Due   int       `json:"due"`       // сроков в этом месяце
	Done  int       `json:"completed"` // из них выполнено
}

const dayLayout = "2006-01-02"

// DayKey — календарный день в зоне loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}

// ByDay — задания, сгруппированные по дню срока, внутри дня — по времени.
func ByDay(assignments []models.Assignment, loc *time.Location) map[string][]models.Assignment {
	out := make(map[string][]models.Assignment)
	for _, a := range assignments {
		k := DayKey(a.DueDate, loc)
		out[k] = append(out[k], a)
	}
	for _, v := range out {
		sort.SliceStable(v, func(i, j int) bool { return v[i].DueDate.Before(v[j].DueDate) })
	}
	return out
}

// BuildMonth — сетка месяца с воскресенья до субботы, как в календаре.
func BuildMonth(month time.Time, assignments []models.Assignment, now time.Time, loc *time.Location) Month {
	y, m, _ := month.In(loc).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	buckets := ByDay(assignments, loc)
	res := Month{Start: first}
	var week []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		items := buckets[DayKey(d, loc)]
		cell := Day{
			Date:       d,
			InMonth:    d.Month() == m,
			Today:      SameDay(d, now, loc),
			TotalOnDay: len(items),
		}
		if len(items) > PerDay {
			cell.Assignments = items[:PerDay]
			cell.More = len(items) - PerDay
		} else {
			cell.Assignments = items
		}
		if cell.Assignments == nil {
			cell.Assignments = []models.Assignment{}
		}
		week = append(week, cell)
		if len(week) == 7 {
			res.Weeks = append(res.Weeks, week)
			week = nil
		}
	}

	for _, a := range assignments {
		dy, dm, _ := a.DueDate.In(loc).Date()
		if dy == y && dm == m {
			res.Due++
			if a.Completed {
				res.Done++
			}
		}
	}
	return res
}

// UpcomingItem — строка списка ближайших сроков в календаре.
type UpcomingItem struct {
	Assignment models.Assignment `json:"assignment"`
	DaysUntil  int               `json:"days_until"`
}

// CalendarUpcoming — задания со сроком не раньше now, по возрастанию, первые limit.
func CalendarUpcoming(assignments []models.Assignment, now time.Time, limit int) []UpcomingItem {
	var due []models.Assignment
	for _, a := range assignments {
		if !a.DueDate.Before(now) {
			due = append(due, a)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].DueDate.Before(due[j].DueDate) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	out := make([]UpcomingItem, 0, len(due))
	for _, a := range due {
		out = append(out, UpcomingItem{Assignment: a, DaysUntil: CeilDaysUntil(a.DueDate, now)})
	}
	return out
}
