package web

import (
	"net/http"
	"strings"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AssignmentsQuery — состояние экрана заданий, собирается из query на каждый запрос.
type AssignmentsQuery struct {
	Search   string
	CourseID int64
	Priority models.Priority
	Status   models.Status
}

func (q *AssignmentsQuery) Bind(ctx echo.Context) error {
	q.Search = strings.TrimSpace(ctx.QueryParam("search"))

	id, err := queryID(ctx, "course")
	if err != nil {
		return err
	}
	q.CourseID = id

	var fields []FieldError
	if p := strings.ToLower(strings.TrimSpace(ctx.QueryParam("priority"))); p != "" && p != "all" {
		q.Priority = models.Priority(p)
		if !q.Priority.Valid() {
			fields = append(fields, FieldError{"priority", assignmentMessages["priority"]})
		}
	}
	if st := strings.ToLower(strings.TrimSpace(ctx.QueryParam("status"))); st != "" && st != "all" {
		q.Status = models.Status(st)
		if !q.Status.Valid() {
			fields = append(fields, FieldError{"status", "Status must be one of: pending, completed, overdue"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (q AssignmentsQuery) Filter() planner.Filter {
	return planner.Filter{Search: q.Search, CourseID: q.CourseID, Priority: q.Priority, Status: q.Status}
}

type AssignmentsPage struct {
	Items []AssignmentView `json:"items"`
	Stats planner.Stats    `json:"stats"`
	Empty *EmptyState      `json:"empty,omitempty"`
}

// EmptyState — подпись пустого списка: нет заданий вообще или ничего не подошло под фильтры.
type EmptyState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func emptyAssignments(total int, f planner.Filter) *EmptyState {
	if total == 0 && f.IsEmpty() {
		return &EmptyState{
			Title:       "No assignments yet",
			Description: "Start organizing your academic life by adding your first assignment.",
		}
	}
	return &EmptyState{
		Title:       "No assignments match your filters",
		Description: "Try adjusting your search terms or filters to find assignments.",
	}
}

type assignmentAPI struct {
	s *Server
}

func registerAssignmentAPI(g *echo.Group, s *Server) {
	api := assignmentAPI{s: s}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.DELETE("", api.destroyMultiple)

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/toggle", api.toggle)
	dg.PUT("/grade", api.grade)
}

// Счётчики в шапке всегда по всей коллекции, фильтр сужает только список.
func (api *assignmentAPI) query(ctx echo.Context) error {
	var q AssignmentsQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	now := api.s.now()
	list := api.s.opts.Repos.Assignments.List(rctx)
	courses := api.s.opts.Repos.Courses.List(rctx)
	filter := q.Filter()

	page := AssignmentsPage{
		Items: indexCourses(courses).assignmentViews(planner.Apply(list, courses, filter, now), now),
		Stats: planner.Summarize(list, now, api.s.opts.DueSoonDays),
	}
	if len(page.Items) == 0 {
		page.Empty = emptyAssignments(len(list), filter)
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *assignmentAPI) view(ctx echo.Context, a models.Assignment) AssignmentView {
	idx := courseIndex{}
	if c, err := api.s.opts.Repos.Courses.Get(ctx.Request().Context(), a.CourseID); err == nil {
		idx[c.ID] = c
	}
	return idx.assignmentView(a, api.s.now())
}

func (api *assignmentAPI) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	a, err := api.s.opts.Repos.Assignments.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "retrieving assignment")
	}
	return ctx.JSON(http.StatusOK, api.view(ctx, a))
}

func (api *assignmentAPI) bind(ctx echo.Context, id int64) (models.Assignment, error) {
	var form AssignmentForm
	if err := ctx.Bind(&form); err != nil {
		return models.Assignment{}, errors.Wrap(err, "binding to AssignmentForm")
	}
	if err := form.Validate(api.s.v, api.s.opts.Location); err != nil {
		return models.Assignment{}, err
	}
	return form.Model(id), nil
}

func (api *assignmentAPI) create(ctx echo.Context) error {
	a, err := api.bind(ctx, 0)
	if err != nil {
		return err
	}
	created, err := api.s.opts.Repos.Assignments.Create(ctx.Request().Context(), a)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, api.view(ctx, created))
}

func (api *assignmentAPI) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	a, err := api.bind(ctx, id)
	if err != nil {
		return err
	}
	updated, err := api.s.opts.Repos.Assignments.Update(ctx.Request().Context(), a)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, api.view(ctx, updated))
}

func (api *assignmentAPI) toggle(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	a, err := api.s.opts.Repos.Assignments.ToggleComplete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "toggling assignment")
	}
	return ctx.JSON(http.StatusOK, api.view(ctx, a))
}

func (api *assignmentAPI) grade(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var form GradeForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to GradeForm")
	}
	if err := form.Validate(api.s.v); err != nil {
		return err
	}
	g, maxPts := form.Values()
	a, err := api.s.opts.Repos.Assignments.UpdateGrade(ctx.Request().Context(), id, g, maxPts)
	if err != nil {
		return errors.Wrap(err, "grading assignment")
	}
	return ctx.JSON(http.StatusOK, api.view(ctx, a))
}

func (api *assignmentAPI) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err := api.s.opts.Repos.Assignments.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *assignmentAPI) destroyMultiple(ctx echo.Context) error {
	var req idsRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to idsRequest")
	}
	if len(req.IDs) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "ids", Error: "ids is required"}}}
	}
	if err := api.s.opts.Repos.Assignments.Delete(ctx.Request().Context(), req.IDs...); err != nil {
		return errors.Wrap(err, "deleting assignments")
	}
	return ctx.NoContent(http.StatusNoContent)
}
