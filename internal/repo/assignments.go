package repo

import (
	"context"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
)

type Assignments struct {
	store[models.Assignment]
}

var byDueDate = []recordsvc.Order{{Field: "due_date"}}

func (r *Assignments) List(ctx context.Context) []models.Assignment {
	return r.list(ctx, "assignments.list", recordsvc.ListParams{OrderBy: byDueDate})
}

// ListByCourse фильтрует на стороне хранилища.
func (r *Assignments) ListByCourse(ctx context.Context, courseID int64) []models.Assignment {
	return r.list(ctx, "assignments.by_course", recordsvc.ListParams{
		Where: []recordsvc.Where{{
			Field: "course_id", Operator: recordsvc.EqualTo, Values: []any{courseID},
		}},
		OrderBy: byDueDate,
	})
}

func (r *Assignments) Get(ctx context.Context, id int64) (models.Assignment, error) {
	return r.get(ctx, "assignments.get", id)
}

func (r *Assignments) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	return r.create(ctx, "assignments.create", encodeAssignment(a))
}

func (r *Assignments) Update(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	return r.update(ctx, "assignments.update", encodeAssignment(a))
}

// UpdateGrade меняет только оценку и максимум баллов.
func (r *Assignments) UpdateGrade(ctx context.Context, id int64, grade *float64, maxPoints float64) (models.Assignment, error) {
	rec := recordsvc.Record{recordsvc.FieldID: id, "grade": nil, "max_points": maxPoints}
	if grade != nil {
		rec["grade"] = *grade
	}
	return r.update(ctx, "assignments.update_grade", rec)
}

// ToggleComplete читает текущее состояние и записывает обратное.
func (r *Assignments) ToggleComplete(ctx context.Context, id int64) (models.Assignment, error) {
	cur, err := r.get(ctx, "assignments.toggle", id)
	if err != nil {
		return models.Assignment{}, err
	}
	return r.update(ctx, "assignments.toggle", recordsvc.Record{
		recordsvc.FieldID: id,
		"completed":       !cur.Completed,
	})
}

func (r *Assignments) Delete(ctx context.Context, ids ...int64) error {
	return r.delete(ctx, "assignments.delete", ids)
}
