package repo

import (
	"context"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
)

type Courses struct {
	store[models.Course]
}

// List — по умолчанию по названию.
func (r *Courses) List(ctx context.Context, order ...recordsvc.Order) []models.Course {
	if len(order) == 0 {
		order = []recordsvc.Order{{Field: "name"}}
	}
	return r.list(ctx, "courses.list", recordsvc.ListParams{OrderBy: order})
}

func (r *Courses) Get(ctx context.Context, id int64) (models.Course, error) {
	return r.get(ctx, "courses.get", id)
}

func (r *Courses) Create(ctx context.Context, c models.Course) (models.Course, error) {
	return r.create(ctx, "courses.create", encodeCourse(c))
}

func (r *Courses) Update(ctx context.Context, c models.Course) (models.Course, error) {
	return r.update(ctx, "courses.update", encodeCourse(c))
}

// Delete не трогает задания курса: хранилище не каскадирует удаление.
func (r *Courses) Delete(ctx context.Context, ids ...int64) error {
	return r.delete(ctx, "courses.delete", ids)
}
