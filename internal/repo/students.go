package repo

import (
	"context"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
)

type Students struct {
	store[models.Student]
}

var studentsDefaultOrder = []recordsvc.Order{{Field: "last_name"}, {Field: "first_name"}}

// List — по умолчанию по фамилии, затем по имени.
func (r *Students) List(ctx context.Context, order ...recordsvc.Order) []models.Student {
	if len(order) == 0 {
		order = studentsDefaultOrder
	}
	return r.list(ctx, "students.list", recordsvc.ListParams{OrderBy: order})
}

func (r *Students) Get(ctx context.Context, id int64) (models.Student, error) {
	return r.get(ctx, "students.get", id)
}

func (r *Students) Create(ctx context.Context, s models.Student) (models.Student, error) {
	return r.create(ctx, "students.create", encodeStudent(s))
}

func (r *Students) Update(ctx context.Context, s models.Student) (models.Student, error) {
	return r.update(ctx, "students.update", encodeStudent(s))
}

func (r *Students) Delete(ctx context.Context, ids ...int64) error {
	return r.delete(ctx, "students.delete", ids)
}
