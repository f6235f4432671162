package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/recordsvc"
)

type kind int

const (
	kText kind = iota
	kInt
	kFloat
	kBool
	kTime
	kDate
)

const dateLayout = "2006-01-02"

type column struct {
	name string
	kind kind
}

type table struct {
	name    string
	columns []column
	byName  map[string]column
}

func newTable(name string, cols ...column) *table {
	t := &table{name: name, columns: append([]column{{recordsvc.FieldID, kInt}}, cols...)}
	t.byName = make(map[string]column, len(t.columns))
	for _, c := range t.columns {
		t.byName[c.name] = c
	}
	return t
}

var tables = map[recordsvc.Collection]*table{
	recordsvc.Students: newTable("students",
		column{"first_name", kText}, column{"last_name", kText}, column{"email", kText},
		column{"phone", kText}, column{"date_of_birth", kDate}, column{"address", kText},
		column{"grade_level", kInt}, column{"amount_paid", kFloat},
	),
	recordsvc.Courses: newTable("courses",
		column{"name", kText}, column{"instructor", kText}, column{"credits", kInt},
		column{"schedule", kText}, column{"semester", kText}, column{"color", kText},
	),
	recordsvc.Assignments: newTable("assignments",
		column{"title", kText}, column{"description", kText}, column{"due_date", kTime},
		column{"priority", kText}, column{"completed", kBool}, column{"grade", kFloat},
		column{"max_points", kFloat}, column{"course_id", kInt},
	),
}

// selectColumns — id и запрошенные поля; пустой список — все колонки.
func (t *table) selectColumns(fields []string) ([]column, error) {
	if len(fields) == 0 {
		return t.columns, nil
	}
	out := []column{t.byName[recordsvc.FieldID]}
	for _, f := range fields {
		if f == recordsvc.FieldID {
			continue
		}
		c, ok := t.byName[f]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", f)
		}
		out = append(out, c)
	}
	return out, nil
}

func columnList(cols []column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

// param приводит значение записи к типу колонки.
func (c column) param(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch c.kind {
	case kText:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case kInt:
		if s, ok := v.(string); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.name, err)
			}
			return n, nil
		}
		if n, ok := v.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
		f, ok := recordsvc.Number(v)
		if !ok {
			return nil, fmt.Errorf("%s: expected integer, got %T", c.name, v)
		}
		return int64(f), nil
	case kFloat:
		if s, ok := v.(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.name, err)
			}
			return f, nil
		}
		f, ok := recordsvc.Number(v)
		if !ok {
			return nil, fmt.Errorf("%s: expected number, got %T", c.name, v)
		}
		return f, nil
	case kBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return strconv.ParseBool(b)
		}
		return nil, fmt.Errorf("%s: expected bool, got %T", c.name, v)
	case kTime, kDate:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if t == "" {
				return nil, nil
			}
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return ts, nil
			}
			ts, err := time.Parse(dateLayout, t)
			if err != nil {
				return nil, fmt.Errorf("%s: bad date %q", c.name, t)
			}
			return ts, nil
		}
		return nil, fmt.Errorf("%s: expected date, got %T", c.name, v)
	}
	return v, nil
}

func (c column) holder() any {
	switch c.kind {
	case kInt:
		return new(sql.NullInt64)
	case kFloat:
		return new(sql.NullFloat64)
	case kBool:
		return new(sql.NullBool)
	case kTime, kDate:
		return new(sql.NullTime)
	}
	return new(sql.NullString)
}

// value — обратное преобразование: время уходит строкой RFC3339 (UTC), дата — YYYY-MM-DD.
func (c column) value(h any) any {
	switch x := h.(type) {
	case *sql.NullString:
		if x.Valid {
			return x.String
		}
	case *sql.NullInt64:
		if x.Valid {
			return x.Int64
		}
	case *sql.NullFloat64:
		if x.Valid {
			return x.Float64
		}
	case *sql.NullBool:
		if x.Valid {
			return x.Bool
		}
	case *sql.NullTime:
		if x.Valid {
			if c.kind == kDate {
				return x.Time.Format(dateLayout)
			}
			return x.Time.UTC().Format(time.RFC3339)
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, cols []column) (recordsvc.Record, error) {
	holders := make([]any, len(cols))
	for i, c := range cols {
		holders[i] = c.holder()
	}
	if err := s.Scan(holders...); err != nil {
		return nil, err
	}
	r := make(recordsvc.Record, len(cols))
	for i, c := range cols {
		r[c.name] = c.value(holders[i])
	}
	return r, nil
}
