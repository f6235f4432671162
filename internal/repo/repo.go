// Package repo — граница доступа к данным: типизированные репозитории
// поверх recordsvc.Client. Чтение при сбое логируется и отдаёт пустой
// результат, запись возвращает ошибку.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/studysync/internal/ctxutil"
	"github.com/Spok95/studysync/internal/logging"
	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("record service unavailable")
)

// WriteError — отказ сервиса записей при create/update/delete.
// Failed перечисляет записи пакета, которые не прошли.
type WriteError struct {
	Op      string
	Message string
	Failed  []recordsvc.Result
	Err     error
}

func (e *WriteError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

func (e *WriteError) Unwrap() error { return e.Err }

// Set — все репозитории приложения.
type Set struct {
	Students    *Students
	Courses     *Courses
	Assignments *Assignments
}

func New(c recordsvc.Client, log *zap.Logger) *Set {
	if log == nil {
		log = zap.NewNop()
	}
	return &Set{
		Students: &Students{store[models.Student]{
			c: c, log: log, coll: recordsvc.Students, fields: studentFields,
			decode: decodeStudent,
		}},
		Courses: &Courses{store[models.Course]{
			c: c, log: log, coll: recordsvc.Courses, fields: courseFields,
			decode: decodeCourse,
		}},
		Assignments: &Assignments{store[models.Assignment]{
			c: c, log: log, coll: recordsvc.Assignments, fields: assignmentFields,
			decode: decodeAssignment,
		}},
	}
}

type store[T any] struct {
	c      recordsvc.Client
	log    *zap.Logger
	coll   recordsvc.Collection
	fields []string
	decode func(recordsvc.Record) T
}

func (s *store[T]) logger(ctx context.Context) *zap.Logger {
	return logging.FromContext(ctx, s.log.With(zap.String("collection", string(s.coll))))
}

func (s *store[T]) list(ctx context.Context, op string, p recordsvc.ListParams) []T {
	p.Fields = s.fields
	ctx = ctxutil.WithOp(ctx, op)
	res, err := s.c.List(ctx, s.coll, p)
	switch {
	case err != nil:
		s.logger(ctx).Warn("read failed, rendering empty list", zap.Error(err))
		return []T{}
	case !res.Success:
		s.logger(ctx).Warn("read rejected, rendering empty list", zap.String("message", res.Message))
		return []T{}
	}
	out := make([]T, 0, len(res.Data))
	for _, r := range res.Data {
		out = append(out, s.decode(r))
	}
	return out
}

func isNotFound(msg string) bool {
	return strings.Contains(strings.ToLower(msg), recordsvc.ErrNotFound.Error())
}

func (s *store[T]) get(ctx context.Context, op string, id int64) (T, error) {
	var zero T
	ctx = ctxutil.WithOp(ctx, op)
	res, err := s.c.GetByID(ctx, s.coll, id, s.fields)
	switch {
	case err != nil:
		s.logger(ctx).Warn("read failed", zap.Int64("id", id), zap.Error(err))
		return zero, fmt.Errorf("%s %d: %w: %v", op, id, ErrUnavailable, err)
	case !res.Success && isNotFound(res.Message):
		return zero, fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	case !res.Success:
		s.logger(ctx).Warn("read rejected", zap.Int64("id", id), zap.String("message", res.Message))
		return zero, fmt.Errorf("%s %d: %w: %s", op, id, ErrUnavailable, res.Message)
	case res.Data == nil:
		return zero, fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	return s.decode(res.Data), nil
}

// one разбирает пакетный ответ из одной записи.
func (s *store[T]) one(op string, res *recordsvc.BatchResponse, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, &WriteError{Op: op, Message: err.Error(), Err: ErrUnavailable}
	}
	if !res.Success {
		return zero, &WriteError{Op: op, Message: res.Message, Failed: res.Results}
	}
	if failed := res.Failed(); len(failed) > 0 {
		if len(res.Results) == 1 && isNotFound(failed[0].Message) {
			return zero, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return zero, &WriteError{Op: op, Message: failed[0].Message, Failed: failed}
	}
	if len(res.Results) == 0 {
		return zero, &WriteError{Op: op, Message: "empty response"}
	}
	return s.decode(res.Results[0].Data), nil
}

func (s *store[T]) create(ctx context.Context, op string, r recordsvc.Record) (T, error) {
	delete(r, recordsvc.FieldID)
	res, err := s.c.Create(ctxutil.WithOp(ctx, op), s.coll, []recordsvc.Record{r})
	return s.one(op, res, err)
}

func (s *store[T]) update(ctx context.Context, op string, r recordsvc.Record) (T, error) {
	res, err := s.c.Update(ctxutil.WithOp(ctx, op), s.coll, []recordsvc.Record{r})
	return s.one(op, res, err)
}

func (s *store[T]) delete(ctx context.Context, op string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := s.c.Delete(ctxutil.WithOp(ctx, op), s.coll, ids)
	if err != nil {
		return &WriteError{Op: op, Message: err.Error(), Err: ErrUnavailable}
	}
	if !res.Success {
		return &WriteError{Op: op, Message: res.Message, Failed: res.Results}
	}
	if failed := res.Failed(); len(failed) > 0 {
		if len(ids) == 1 && isNotFound(failed[0].Message) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return &WriteError{Op: op, Message: failed[0].Message, Failed: failed}
	}
	return nil
}
