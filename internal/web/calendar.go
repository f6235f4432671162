package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
	"github.com/labstack/echo/v4"
)

const (
	monthLayout           = "2006-01"
	calendarUpcomingLimit = 10
)

// CalendarQuery — выбранный месяц календаря (?month=YYYY-MM, по умолчанию текущий).
type CalendarQuery struct {
	Month time.Time
}

func (q *CalendarQuery) Bind(ctx echo.Context, now time.Time, loc *time.Location) error {
	raw := strings.TrimSpace(ctx.QueryParam("month"))
	if raw == "" {
		y, m, _ := now.In(loc).Date()
		q.Month = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return nil
	}
	t, err := time.ParseInLocation(monthLayout, raw, loc)
	if err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "month", Error: "Month must look like YYYY-MM"}}}
	}
	q.Month = t
	return nil
}

type CalendarItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Course    string `json:"course"`
	Color     string `json:"color"`
	Completed bool   `json:"completed"`
	Overdue   bool   `json:"overdue"`
}

type CalendarDay struct {
	Date    string         `json:"date"`
	InMonth bool           `json:"in_month"`
	Today   bool           `json:"today"`
	Items   []CalendarItem `json:"items"`
	More    int            `json:"more"`
}

type CalendarUpcoming struct {
	AssignmentView
	DaysUntil int `json:"days_until"`
}

type CalendarPage struct {
	Month     string             `json:"month"`
	Title     string             `json:"title"`
	Prev      string             `json:"prev"`
	Next      string             `json:"next"`
	Weeks     [][]CalendarDay    `json:"weeks"`
	Due       int                `json:"due"`
	Completed int                `json:"completed"`
	Courses   int                `json:"courses"`
	Upcoming  []CalendarUpcoming `json:"upcoming"`
}

func registerCalendarAPI(g *echo.Group, s *Server) {
	g.GET("/calendar", s.calendar)
}

func (s *Server) calendar(ctx echo.Context) error {
	now := s.now()
	loc := s.opts.Location
	var q CalendarQuery
	if err := q.Bind(ctx, now, loc); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	assignments := s.opts.Repos.Assignments.List(rctx)
	courses := s.opts.Repos.Courses.List(rctx)
	idx := indexCourses(courses)

	m := planner.BuildMonth(q.Month, assignments, now, loc)
	page := CalendarPage{
		Month:     m.Start.Format(monthLayout),
		Title:     m.Start.Format("January 2006"),
		Prev:      m.Start.AddDate(0, -1, 0).Format(monthLayout),
		Next:      m.Start.AddDate(0, 1, 0).Format(monthLayout),
		Weeks:     make([][]CalendarDay, 0, len(m.Weeks)),
		Due:       m.Due,
		Completed: m.Done,
		Courses:   len(courses),
	}
	for _, week := range m.Weeks {
		row := make([]CalendarDay, 0, len(week))
		for _, d := range week {
			row = append(row, CalendarDay{
				Date:    d.Date.Format("2006-01-02"),
				InMonth: d.InMonth,
				Today:   d.Today,
				Items:   idx.calendarItems(d.Assignments, now),
				More:    d.More,
			})
		}
		page.Weeks = append(page.Weeks, row)
	}
	for _, u := range planner.CalendarUpcoming(assignments, now, calendarUpcomingLimit) {
		page.Upcoming = append(page.Upcoming, CalendarUpcoming{
			AssignmentView: idx.assignmentView(u.Assignment, now),
			DaysUntil:      u.DaysUntil,
		})
	}
	if page.Upcoming == nil {
		page.Upcoming = []CalendarUpcoming{}
	}
	return ctx.JSON(http.StatusOK, page)
}

func (idx courseIndex) calendarItems(list []models.Assignment, now time.Time) []CalendarItem {
	out := make([]CalendarItem, 0, len(list))
	for _, a := range list {
		v := idx.assignmentView(a, now)
		out = append(out, CalendarItem{
			ID:        a.ID,
			Title:     a.Title,
			Course:    v.CourseName,
			Color:     v.CourseColor,
			Completed: a.Completed,
			Overdue:   v.Status == models.StatusOverdue,
		})
	}
	return out
}
