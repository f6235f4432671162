package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/grades"
	"github.com/Spok95/studysync/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var courseOrderFields = []string{"name", "instructor", "credits", "semester"}

// CourseView — карточка курса: число заданий и текущий процент.
type CourseView struct {
	models.Course
	ColorClass  string `json:"color_class"`
	Assignments int    `json:"assignments"`
	Completed   int    `json:"completed"`
	Percentage  *int   `json:"percentage"`
	Letter      string `json:"letter,omitempty"`
}

func courseViews(courses []models.Course, assignments []models.Assignment) []CourseView {
	out := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		v := CourseView{Course: c, ColorClass: c.Color.Class()}
		for _, a := range assignments {
			if a.CourseID != c.ID {
				continue
			}
			v.Assignments++
			if a.Completed {
				v.Completed++
			}
		}
		if pct, ok := grades.CoursePercentage(c.ID, assignments); ok {
			v.Percentage = &pct
			v.Letter = grades.Letter(float64(pct))
		}
		out = append(out, v)
	}
	return out
}

type courseAPI struct {
	s *Server
}

func registerCourseAPI(g *echo.Group, s *Server) {
	api := courseAPI{s: s}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.DELETE("", api.destroyMultiple)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *courseAPI) query(ctx echo.Context) error {
	var ord Ordering
	if err := ord.Bind(ctx, courseOrderFields...); err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	courses := api.s.opts.Repos.Courses.List(rctx, ord.Orders...)
	assignments := api.s.opts.Repos.Assignments.List(rctx)
	return ctx.JSON(http.StatusOK, courseViews(courses, assignments))
}

func (api *courseAPI) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	c, err := api.s.opts.Repos.Courses.Get(rctx, id)
	if err != nil {
		return errors.Wrap(err, "retrieving course")
	}
	views := courseViews([]models.Course{c}, api.s.opts.Repos.Assignments.ListByCourse(rctx, id))
	return ctx.JSON(http.StatusOK, views[0])
}

func (api *courseAPI) bind(ctx echo.Context, id int64) (models.Course, error) {
	var form CourseForm
	if err := ctx.Bind(&form); err != nil {
		return models.Course{}, errors.Wrap(err, "binding to CourseForm")
	}
	if err := form.Validate(api.s.v); err != nil {
		return models.Course{}, err
	}
	return form.Model(id), nil
}

func (api *courseAPI) create(ctx echo.Context) error {
	c, err := api.bind(ctx, 0)
	if err != nil {
		return err
	}
	created, err := api.s.opts.Repos.Courses.Create(ctx.Request().Context(), c)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (api *courseAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	c, err := api.bind(ctx, id)
	if err != nil {
		return err
	}
	updated, err := api.s.opts.Repos.Courses.Update(ctx.Request().Context(), c)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, updated)
}

// destroy удаляет только курс; задания курса остаются и показываются как "Unknown course".
func (api *courseAPI) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.s.opts.Repos.Courses.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *courseAPI) destroyMultiple(ctx echo.Context) error {
	var req idsRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to idsRequest")
	}
	if len(req.IDs) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "ids", Error: "ids is required"}}}
	}
	if err := api.s.opts.Repos.Courses.Delete(ctx.Request().Context(), req.IDs...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return ctx.NoContent(http.StatusNoContent)
}
