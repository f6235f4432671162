package recordsvc

import (
	"context"
	"sort"
	"sync"
)

type table struct {
	rows   map[int64]Record
	nextID int64
}

// Memory — хранилище в памяти процесса. Используется в тестах
// и при RECORD_BACKEND=memory.
type Memory struct {
	mu     sync.RWMutex
	tables map[Collection]*table
}

func NewMemory() *Memory {
	m := &Memory{tables: make(map[Collection]*table, len(Collections))}
	for _, c := range Collections {
		m.tables[c] = &table{rows: map[int64]Record{}}
	}
	return m
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) query(t *table) []Record {
	out := make([]Record, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := ID(out[i])
		b, _ := ID(out[j])
		return a < b
	})
	return out
}

func (m *Memory) List(ctx context.Context, c Collection, p ListParams) (*ListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[c]
	if !ok {
		return &ListResponse{Message: ErrUnknownCollection.Error()}, nil
	}
	var rows []Record
	for _, r := range m.query(t) {
		if Match(r, p.Where) {
			rows = append(rows, r)
		}
	}
	Sort(rows, p.OrderBy)
	total := len(rows)
	rows = Page(rows, p.Limit, p.Offset)

	data := make([]Record, 0, len(rows))
	for _, r := range rows {
		data = append(data, Project(r, p.Fields))
	}
	return &ListResponse{Success: true, Data: data, Total: total}, nil
}

func (m *Memory) GetByID(ctx context.Context, c Collection, id int64, fields []string) (*GetResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[c]
	if !ok {
		return &GetResponse{Message: ErrUnknownCollection.Error()}, nil
	}
	r, ok := t.rows[id]
	if !ok {
		return &GetResponse{Message: ErrNotFound.Error()}, nil
	}
	return &GetResponse{Success: true, Data: Project(r, fields)}, nil
}

func (m *Memory) Create(ctx context.Context, c Collection, records []Record) (*BatchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[c]
	if !ok {
		return &BatchResponse{Message: ErrUnknownCollection.Error()}, nil
	}
	res := &BatchResponse{Success: true, Results: make([]Result, 0, len(records))}
	for _, r := range records {
		t.nextID++
		row := r.Clone()
		if row == nil {
			row = Record{}
		}
		row[FieldID] = t.nextID
		t.rows[t.nextID] = row
		res.Results = append(res.Results, Result{Success: true, Data: row.Clone()})
	}
	return res, nil
}

// Update сливает переданные поля с существующей записью.
func (m *Memory) Update(ctx context.Context, c Collection, records []Record) (*BatchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[c]
	if !ok {
		return &BatchResponse{Message: ErrUnknownCollection.Error()}, nil
	}
	res := &BatchResponse{Success: true, Results: make([]Result, 0, len(records))}
	for _, r := range records {
		id, ok := ID(r)
		if !ok {
			res.Results = append(res.Results, Result{Message: ErrMissingID.Error(), Data: r.Clone()})
			continue
		}
		row, ok := t.rows[id]
		if !ok {
			res.Results = append(res.Results, Result{Message: ErrNotFound.Error(), Data: r.Clone()})
			continue
		}
		for k, v := range r {
			if k != FieldID {
				row[k] = v
			}
		}
		res.Results = append(res.Results, Result{Success: true, Data: row.Clone()})
	}
	return res, nil
}

func (m *Memory) Delete(ctx context.Context, c Collection, ids []int64) (*BatchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[c]
	if !ok {
		return &BatchResponse{Message: ErrUnknownCollection.Error()}, nil
	}
	res := &BatchResponse{Success: true, Results: make([]Result, 0, len(ids))}
	for _, id := range ids {
		if _, ok := t.rows[id]; !ok {
			res.Results = append(res.Results, Result{Message: ErrNotFound.Error(), Data: Record{FieldID: id}})
			continue
		}
		delete(t.rows, id)
		res.Results = append(res.Results, Result{Success: true, Data: Record{FieldID: id}})
	}
	return res, nil
}
