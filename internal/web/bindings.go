package web

import (
	"strconv"
	"strings"

	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/labstack/echo/v4"
)

const orderingParam = "ordering"

// Ordering — параметр ?ordering=last_name,-amount_paid.
type Ordering struct {
	Orders []recordsvc.Order
}

// Bind разбирает ordering; поля вне allowed дают ошибку валидации.
func (ord *Ordering) Bind(ctx echo.Context, allowed ...string) error {
	val := strings.TrimSpace(ctx.QueryParam(orderingParam))
	if val == "" {
		return nil
	}
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		if field == "" {
			continue
		}
		if !ok[field] {
			return &ValidationError{Fields: []FieldError{{Field: orderingParam, Error: "cannot order by " + field}}}
		}
		ord.Orders = append(ord.Orders, recordsvc.Order{Field: field, Desc: descending})
	}
	return nil
}

func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func queryID(ctx echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(ctx.QueryParam(name))
	if raw == "" || raw == "all" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, &ValidationError{Fields: []FieldError{{Field: name, Error: "must be a course id"}}}
	}
	return id, nil
}
