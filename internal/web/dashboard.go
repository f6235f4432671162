package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/grades"
	"github.com/Spok95/studysync/internal/planner"
	"github.com/labstack/echo/v4"
)

const (
	dashboardUpcomingDays  = 7
	dashboardUpcomingLimit = 3
)

type Dashboard struct {
	Stats        planner.Stats    `json:"stats"`
	AverageGrade *int             `json:"average_grade"`
	Upcoming     []AssignmentView `json:"upcoming"`
	Courses      int              `json:"courses"`
	GPA          *float64         `json:"gpa"`
	GPAText      string           `json:"gpa_text"`
}

func registerDashboardAPI(g *echo.Group, s *Server) {
	g.GET("/dashboard", s.dashboard)
}

func (s *Server) dashboard(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	assignments := s.opts.Repos.Assignments.List(rctx)
	courses := s.opts.Repos.Courses.List(rctx)
	now := s.now()

	d := Dashboard{
		Stats:    planner.Summarize(assignments, now, s.opts.DueSoonDays),
		Upcoming: indexCourses(courses).assignmentViews(planner.Upcoming(assignments, now, dashboardUpcomingDays, dashboardUpcomingLimit), now),
		Courses:  len(courses),
	}
	if avg, ok := grades.AverageGrade(assignments); ok {
		d.AverageGrade = &avg
	}
	if gpa, ok := grades.OverallGPA(courses, assignments); ok {
		d.GPA = &gpa
		d.GPAText = grades.FormatGPA(gpa, ok)
	}
	return ctx.JSON(http.StatusOK, d)
}
