package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/models"
	"github.com/labstack/echo/v4"
)

type colorOption struct {
	Value models.Color `json:"value"`
	Class string       `json:"class"`
}

type Meta struct {
	Priorities      []models.Priority `json:"priorities"`
	Statuses        []models.Status   `json:"statuses"`
	Colors          []colorOption     `json:"colors"`
	DefaultSemester string            `json:"default_semester"`
	DefaultMaxPts   float64           `json:"default_max_points"`
	DueSoonDays     int               `json:"due_soon_days"`
}

// meta — перечисления и значения по умолчанию для форм.
func (s *Server) meta(ctx echo.Context) error {
	colors := make([]colorOption, 0, len(models.Colors))
	for _, c := range models.Colors {
		colors = append(colors, colorOption{Value: c, Class: c.Class()})
	}
	return ctx.JSON(http.StatusOK, Meta{
		Priorities:      models.Priorities,
		Statuses:        models.Statuses,
		Colors:          colors,
		DefaultSemester: models.SemesterLabel(s.now()),
		DefaultMaxPts:   defaultMaxPts,
		DueSoonDays:     s.opts.DueSoonDays,
	})
}
