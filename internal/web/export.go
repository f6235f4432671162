package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/export"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerExportAPI(g *echo.Group, s *Server) {
	eg := g.Group("/export")
	eg.GET("/grades.xlsx", s.exportGrades)
	eg.GET("/assignments.xlsx", s.exportAssignments)
	eg.GET("/students.xlsx", s.exportStudents)
}

func (s *Server) sendWorkbook(ctx echo.Context, kind string, wb *export.Workbook) error {
	defer func() { _ = wb.Close() }()
	h := ctx.Response().Header()
	h.Set(echo.HeaderContentType, mimeXLSX)
	h.Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename(kind, s.now())+`"`)
	ctx.Response().WriteHeader(http.StatusOK)
	if _, err := wb.WriteTo(ctx.Response()); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func (s *Server) exportGrades(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	wb, err := export.Grades(s.opts.Repos.Courses.List(rctx), s.opts.Repos.Assignments.List(rctx))
	if err != nil {
		return errors.Wrap(err, "building grades workbook")
	}
	return s.sendWorkbook(ctx, "grades", wb)
}

// exportAssignments принимает те же фильтры, что и список заданий.
func (s *Server) exportAssignments(ctx echo.Context) error {
	var q AssignmentsQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	wb, err := export.Assignments(
		s.opts.Repos.Assignments.List(rctx),
		s.opts.Repos.Courses.List(rctx),
		q.Filter(), s.now(), s.opts.Location,
	)
	if err != nil {
		return errors.Wrap(err, "building assignments workbook")
	}
	return s.sendWorkbook(ctx, "assignments", wb)
}

func (s *Server) exportStudents(ctx echo.Context) error {
	wb, err := export.Students(s.opts.Repos.Students.List(ctx.Request().Context()))
	if err != nil {
		return errors.Wrap(err, "building students workbook")
	}
	return s.sendWorkbook(ctx, "students", wb)
}
