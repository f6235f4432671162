// Package recordsvc описывает контракт табличного хранилища записей,
// через которое приложение читает и пишет студентов, курсы и задания.
package recordsvc

import (
	"context"
	"errors"
)

type Collection string

const (
	Students    Collection = "student"
	Courses     Collection = "course"
	Assignments Collection = "assignment"
)

var Collections = []Collection{Students, Courses, Assignments}

func (c Collection) Valid() bool {
	for _, x := range Collections {
		if x == c {
			return true
		}
	}
	return false
}

// FieldID — системное поле идентификатора, присутствует в каждой записи.
const FieldID = "id"

// Record — набор полей одной записи. Значения: string, числа, bool, nil.
type Record map[string]any

func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

type Operator string

const (
	EqualTo              Operator = "EqualTo"
	NotEqualTo           Operator = "NotEqualTo"
	GreaterThan          Operator = "GreaterThan"
	GreaterThanOrEqualTo Operator = "GreaterThanOrEqualTo"
	LessThan             Operator = "LessThan"
	LessThanOrEqualTo    Operator = "LessThanOrEqualTo"
	Contains             Operator = "Contains"
	In                   Operator = "In"
)

type Where struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Values   []any    `json:"values"`
}

type Order struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

type ListParams struct {
	Fields  []string `json:"fields,omitempty"`
	Where   []Where  `json:"where,omitempty"`
	OrderBy []Order  `json:"order_by,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}

type ListResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    []Record `json:"data"`
	Total   int      `json:"total"`
}

type GetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data"`
}

// Result — итог по одной записи в пакетной операции.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

type BatchResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Results []Result `json:"results"`
}

func (b *BatchResponse) Failed() []Result {
	var out []Result
	for _, r := range b.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

func (b *BatchResponse) Succeeded() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Success {
			out = append(out, r)
		}
	}
	return out
}

// Client — операции хранилища. Ошибка возвращается только при сбое
// транспорта; отказ самого хранилища приходит как Success=false.
type Client interface {
	List(ctx context.Context, c Collection, p ListParams) (*ListResponse, error)
	GetByID(ctx context.Context, c Collection, id int64, fields []string) (*GetResponse, error)
	Create(ctx context.Context, c Collection, records []Record) (*BatchResponse, error)
	Update(ctx context.Context, c Collection, records []Record) (*BatchResponse, error)
	Delete(ctx context.Context, c Collection, ids []int64) (*BatchResponse, error)
}

// Pinger — необязательная проверка доступности бэкенда.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrNotFound          = errors.New("record not found")
	ErrMissingID         = errors.New("record id is required")
)
