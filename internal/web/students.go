package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var studentOrderFields = []string{"first_name", "last_name", "email", "grade_level", "amount_paid", "date_of_birth"}

type studentAPI struct {
	s *Server
}

func registerStudentAPI(g *echo.Group, s *Server) {
	api := studentAPI{s: s}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("", api.destroyMultiple)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

type idsRequest struct {
	IDs []int64 `json:"ids"`
}

func (api *studentAPI) query(ctx echo.Context) error {
	var ord Ordering
	if err := ord.Bind(ctx, studentOrderFields...); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.s.opts.Repos.Students.List(ctx.Request().Context(), ord.Orders...))
}

func (api *studentAPI) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st, err := api.s.opts.Repos.Students.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentAPI) bind(ctx echo.Context, id int64) (models.Student, error) {
	var form StudentForm
	if err := ctx.Bind(&form); err != nil {
		return models.Student{}, errors.Wrap(err, "binding to StudentForm")
	}
	if err := form.Validate(api.s.v); err != nil {
		return models.Student{}, err
	}
	return form.Model(id), nil
}

func (api *studentAPI) create(ctx echo.Context) error {
	st, err := api.bind(ctx, 0)
	if err != nil {
		return err
	}
	created, err := api.s.opts.Repos.Students.Create(ctx.Request().Context(), st)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (api *studentAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	st, err := api.bind(ctx, id)
	if err != nil {
		return err
	}
	updated, err := api.s.opts.Repos.Students.Update(ctx.Request().Context(), st)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *studentAPI) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.s.opts.Repos.Students.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentAPI) destroyMultiple(ctx echo.Context) error {
	var req idsRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to idsRequest")
	}
	if len(req.IDs) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "ids", Error: "ids is required"}}}
	}
	if err := api.s.opts.Repos.Students.Delete(ctx.Request().Context(), req.IDs...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}
