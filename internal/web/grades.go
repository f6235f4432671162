package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/grades"
	"github.com/Spok95/studysync/internal/models"
	"github.com/labstack/echo/v4"
)

// GradesQuery — выбранный курс на экране оценок; 0 — все курсы.
type GradesQuery struct {
	CourseID int64
}

type GradesPage struct {
	grades.Summary
	// Selected — строки выбранного курса с оценёнными заданиями.
	Selected []grades.CourseRow `json:"selected"`
	Graded   []AssignmentView   `json:"graded"`
}

func registerGradesAPI(g *echo.Group, s *Server) {
	g.GET("/grades", s.grades)
}

func (s *Server) grades(ctx echo.Context) error {
	var q GradesQuery
	id, err := queryID(ctx, "course")
	if err != nil {
		return err
	}
	q.CourseID = id

	rctx := ctx.Request().Context()
	courses := s.opts.Repos.Courses.List(rctx)
	assignments := s.opts.Repos.Assignments.List(rctx)
	now := s.now()

	page := GradesPage{Summary: grades.Summarize(courses, assignments)}
	page.Selected = make([]grades.CourseRow, 0, len(page.Courses))
	for _, row := range page.Courses {
		if q.CourseID == 0 || row.Course.ID == q.CourseID {
			page.Selected = append(page.Selected, row)
		}
	}

	var graded []models.Assignment
	for _, a := range assignments {
		if a.Graded() && (q.CourseID == 0 || a.CourseID == q.CourseID) {
			graded = append(graded, a)
		}
	}
	page.Graded = indexCourses(courses).assignmentViews(graded, now)
	return ctx.JSON(http.StatusOK, page)
}
