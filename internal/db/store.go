package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/lib/pq"
)

// RecordStore реализует recordsvc.Client поверх Postgres.
// Отказы хранилища возвращаются как Success=false, error — только сбой соединения.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(database *sql.DB) *RecordStore { return &RecordStore{db: database} }

func (s *RecordStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

var opSQL = map[recordsvc.Operator]string{
	recordsvc.EqualTo:              "=",
	recordsvc.NotEqualTo:           "<>",
	recordsvc.GreaterThan:          ">",
	recordsvc.GreaterThanOrEqualTo: ">=",
	recordsvc.LessThan:             "<",
	recordsvc.LessThanOrEqualTo:    "<=",
}

type args struct{ list []any }

func (a *args) add(v any) string {
	a.list = append(a.list, v)
	return "$" + strconv.Itoa(len(a.list))
}

func (t *table) where(conds []recordsvc.Where, a *args) (string, error) {
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conds))
	for _, w := range conds {
		c, ok := t.byName[w.Field]
		if !ok {
			return "", fmt.Errorf("unknown field %q", w.Field)
		}
		switch w.Operator {
		case recordsvc.In:
			if len(w.Values) == 0 {
				parts = append(parts, "FALSE")
				continue
			}
			ph := make([]string, 0, len(w.Values))
			for _, v := range w.Values {
				p, err := c.param(v)
				if err != nil {
					return "", err
				}
				ph = append(ph, a.add(p))
			}
			parts = append(parts, c.name+" IN ("+strings.Join(ph, ", ")+")")
		case recordsvc.Contains:
			if len(w.Values) == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s::text ILIKE '%%' || %s || '%%'", c.name, a.add(fmt.Sprint(w.Values[0]))))
		default:
			op, ok := opSQL[w.Operator]
			if !ok {
				return "", fmt.Errorf("unknown operator %q", w.Operator)
			}
			if len(w.Values) == 0 {
				continue
			}
			p, err := c.param(w.Values[0])
			if err != nil {
				return "", err
			}
			if p == nil {
				if w.Operator == recordsvc.EqualTo {
					parts = append(parts, c.name+" IS NULL")
				} else if w.Operator == recordsvc.NotEqualTo {
					parts = append(parts, c.name+" IS NOT NULL")
				} else {
					parts = append(parts, "FALSE")
				}
				continue
			}
			parts = append(parts, c.name+" "+op+" "+a.add(p))
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (t *table) orderBy(order []recordsvc.Order) (string, error) {
	if len(order) == 0 {
		return " ORDER BY id", nil
	}
	parts := make([]string, 0, len(order)+1)
	for _, o := range order {
		c, ok := t.byName[o.Field]
		if !ok {
			return "", fmt.Errorf("unknown field %q", o.Field)
		}
		dir := "ASC NULLS FIRST"
		if o.Desc {
			dir = "DESC NULLS LAST"
		}
		parts = append(parts, c.name+" "+dir)
	}
	parts = append(parts, "id")
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

func (s *RecordStore) List(ctx context.Context, coll recordsvc.Collection, p recordsvc.ListParams) (*recordsvc.ListResponse, error) {
	t, ok := tables[coll]
	if !ok {
		return &recordsvc.ListResponse{Message: recordsvc.ErrUnknownCollection.Error()}, nil
	}
	cols, err := t.selectColumns(p.Fields)
	if err != nil {
		return &recordsvc.ListResponse{Message: err.Error()}, nil
	}
	var a args
	where, err := t.where(p.Where, &a)
	if err != nil {
		return &recordsvc.ListResponse{Message: err.Error()}, nil
	}
	order, err := t.orderBy(p.OrderBy)
	if err != nil {
		return &recordsvc.ListResponse{Message: err.Error()}, nil
	}
	q := "SELECT " + columnList(cols) + ", count(*) OVER () FROM " + t.name + where + order
	if p.Limit > 0 {
		q += " LIMIT " + a.add(p.Limit)
	}
	if p.Offset > 0 {
		q += " OFFSET " + a.add(p.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, a.list...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll, err)
	}
	defer func() { _ = rows.Close() }()

	res := &recordsvc.ListResponse{Success: true, Data: []recordsvc.Record{}}
	for rows.Next() {
		var total int
		r, err := scanRecord(scanFunc(func(dest ...any) error {
			return rows.Scan(append(dest, &total)...)
		}), cols)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", coll, err)
		}
		res.Total = total
		res.Data = append(res.Data, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", coll, err)
	}
	if len(res.Data) == 0 && p.Offset > 0 {
		// окно за пределами выборки: count(*) OVER () не доступен, считаем отдельно
		total, err := s.count(ctx, t, p.Where)
		if err != nil {
			return nil, err
		}
		res.Total = total
	}
	return res, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func (s *RecordStore) count(ctx context.Context, t *table, conds []recordsvc.Where) (int, error) {
	var a args
	where, err := t.where(conds, &a)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+t.name+where, a.list...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

func (s *RecordStore) GetByID(ctx context.Context, coll recordsvc.Collection, id int64, fields []string) (*recordsvc.GetResponse, error) {
	t, ok := tables[coll]
	if !ok {
		return &recordsvc.GetResponse{Message: recordsvc.ErrUnknownCollection.Error()}, nil
	}
	cols, err := t.selectColumns(fields)
	if err != nil {
		return &recordsvc.GetResponse{Message: err.Error()}, nil
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+columnList(cols)+" FROM "+t.name+" WHERE id = $1", id)
	r, err := scanRecord(row, cols)
	if errors.Is(err, sql.ErrNoRows) {
		return &recordsvc.GetResponse{Message: recordsvc.ErrNotFound.Error()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", coll, id, err)
	}
	return &recordsvc.GetResponse{Success: true, Data: r}, nil
}

// fieldValues разбирает запись в пары колонка/значение, id пропускается.
func (t *table) fieldValues(r recordsvc.Record) ([]column, []any, error) {
	var cols []column
	var vals []any
	for _, c := range t.columns[1:] {
		v, ok := r[c.name]
		if !ok {
			continue
		}
		p, err := c.param(v)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, c)
		vals = append(vals, p)
	}
	for k := range r {
		if _, ok := t.byName[k]; !ok {
			return nil, nil, fmt.Errorf("unknown field %q", k)
		}
	}
	return cols, vals, nil
}

func failed(r recordsvc.Record, err error) recordsvc.Result {
	return recordsvc.Result{Message: err.Error(), Data: r.Clone()}
}

func (s *RecordStore) Create(ctx context.Context, coll recordsvc.Collection, records []recordsvc.Record) (*recordsvc.BatchResponse, error) {
	t, ok := tables[coll]
	if !ok {
		return &recordsvc.BatchResponse{Message: recordsvc.ErrUnknownCollection.Error()}, nil
	}
	res := &recordsvc.BatchResponse{Success: true, Results: make([]recordsvc.Result, 0, len(records))}
	for _, rec := range records {
		cols, vals, err := t.fieldValues(rec)
		if err != nil {
			res.Results = append(res.Results, failed(rec, err))
			continue
		}
		var q string
		if len(cols) == 0 {
			q = "INSERT INTO " + t.name + " DEFAULT VALUES"
		} else {
			var a args
			ph := make([]string, len(vals))
			for i, v := range vals {
				ph[i] = a.add(v)
			}
			q = "INSERT INTO " + t.name + " (" + columnList(cols) + ") VALUES (" + strings.Join(ph, ", ") + ")"
		}
		q += " RETURNING " + columnList(t.columns)
		out, err := scanRecord(s.db.QueryRowContext(ctx, q, vals...), t.columns)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Results = append(res.Results, failed(rec, err))
			continue
		}
		res.Results = append(res.Results, recordsvc.Result{Success: true, Data: out})
	}
	return res, nil
}

func (s *RecordStore) Update(ctx context.Context, coll recordsvc.Collection, records []recordsvc.Record) (*recordsvc.BatchResponse, error) {
	t, ok := tables[coll]
	if !ok {
		return &recordsvc.BatchResponse{Message: recordsvc.ErrUnknownCollection.Error()}, nil
	}
	res := &recordsvc.BatchResponse{Success: true, Results: make([]recordsvc.Result, 0, len(records))}
	for _, rec := range records {
		id, ok := recordsvc.ID(rec)
		if !ok {
			res.Results = append(res.Results, failed(rec, recordsvc.ErrMissingID))
			continue
		}
		cols, vals, err := t.fieldValues(rec)
		if err != nil {
			res.Results = append(res.Results, failed(rec, err))
			continue
		}
		var a args
		var q string
		if len(cols) == 0 {
			q = "SELECT " + columnList(t.columns) + " FROM " + t.name + " WHERE id = " + a.add(id)
		} else {
			sets := make([]string, len(cols))
			for i, c := range cols {
				sets[i] = c.name + " = " + a.add(vals[i])
			}
			q = "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") +
				" WHERE id = " + a.add(id) + " RETURNING " + columnList(t.columns)
		}
		out, err := scanRecord(s.db.QueryRowContext(ctx, q, a.list...), t.columns)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			res.Results = append(res.Results, failed(rec, recordsvc.ErrNotFound))
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Results = append(res.Results, failed(rec, err))
		default:
			res.Results = append(res.Results, recordsvc.Result{Success: true, Data: out})
		}
	}
	return res, nil
}

func (s *RecordStore) Delete(ctx context.Context, coll recordsvc.Collection, ids []int64) (*recordsvc.BatchResponse, error) {
	t, ok := tables[coll]
	if !ok {
		return &recordsvc.BatchResponse{Message: recordsvc.ErrUnknownCollection.Error()}, nil
	}
	rows, err := s.db.QueryContext(ctx, "DELETE FROM "+t.name+" WHERE id = ANY($1) RETURNING id", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("delete %s: %w", coll, err)
	}
	defer func() { _ = rows.Close() }()

	deleted := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("delete %s: %w", coll, err)
		}
		deleted[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delete %s: %w", coll, err)
	}

	res := &recordsvc.BatchResponse{Success: true, Results: make([]recordsvc.Result, 0, len(ids))}
	for _, id := range ids {
		r := recordsvc.Result{Success: deleted[id], Data: recordsvc.Record{recordsvc.FieldID: id}}
		if !r.Success {
			r.Message = recordsvc.ErrNotFound.Error()
		}
		res.Results = append(res.Results, r)
	}
	return res, nil
}
