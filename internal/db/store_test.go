//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/db"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/Spok95/studysync/internal/testutil/testdb"
)

func TestRecordStore_CRUD(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s := db.NewRecordStore(h.DB)

	created, err := s.Create(ctx, recordsvc.Courses, []recordsvc.Record{
		{"name": "Physics", "instructor": "Chen", "credits": 4, "semester": "Fall 2026", "color": "blue"},
		{"name": "Algebra", "instructor": "Ramirez", "credits": "3", "semester": "Fall 2026", "color": "red"},
		{"name": "Bad", "credits": "много"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.Succeeded()) != 2 || len(created.Failed()) != 1 {
		t.Fatalf("ожидали 2 успешных и 1 ошибку, получили %+v", created.Results)
	}
	physicsID, _ := recordsvc.ID(created.Results[0].Data)

	_, err = s.Create(ctx, recordsvc.Assignments, []recordsvc.Record{
		{"title": "Lab", "due_date": "2026-10-20T12:00:00Z", "priority": "high", "completed": false, "grade": nil, "max_points": 100, "course_id": physicsID},
		{"title": "Essay", "due_date": "2026-10-18T09:00:00Z", "priority": "low", "completed": true, "grade": 88.5, "max_points": 100, "course_id": physicsID + 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx, recordsvc.Assignments, recordsvc.ListParams{
		Where:   []recordsvc.Where{{Field: "course_id", Operator: recordsvc.EqualTo, Values: []any{physicsID}}},
		OrderBy: []recordsvc.Order{{Field: "due_date"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !list.Success || len(list.Data) != 1 || list.Data[0]["title"] != "Lab" {
		t.Fatalf("фильтр по курсу: %+v", list)
	}
	if list.Data[0]["due_date"] != "2026-10-20T12:00:00Z" {
		t.Fatalf("due_date: %v", list.Data[0]["due_date"])
	}
	if list.Data[0]["grade"] != nil {
		t.Fatalf("grade должен быть nil, получили %v", list.Data[0]["grade"])
	}

	contains, err := s.List(ctx, recordsvc.Courses, recordsvc.ListParams{
		Where: []recordsvc.Where{{Field: "name", Operator: recordsvc.Contains, Values: []any{"PHYS"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if contains.Total != 1 {
		t.Fatalf("Contains: ожидали 1, получили %d", contains.Total)
	}

	paged, err := s.List(ctx, recordsvc.Courses, recordsvc.ListParams{
		OrderBy: []recordsvc.Order{{Field: "name"}}, Limit: 1, Fields: []string{"name"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if paged.Total != 2 || len(paged.Data) != 1 || paged.Data[0]["name"] != "Algebra" {
		t.Fatalf("страница: %+v", paged)
	}
	if _, ok := paged.Data[0]["credits"]; ok {
		t.Fatal("лишнее поле при выборке Fields")
	}

	upd, err := s.Update(ctx, recordsvc.Assignments, []recordsvc.Record{
		{recordsvc.FieldID: int64(1), "completed": true, "grade": 95},
		{recordsvc.FieldID: int64(999), "completed": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !upd.Results[0].Success || upd.Results[0].Data["grade"] != 95.0 {
		t.Fatalf("update: %+v", upd.Results[0])
	}
	if upd.Results[1].Success || upd.Results[1].Message != recordsvc.ErrNotFound.Error() {
		t.Fatalf("update несуществующей: %+v", upd.Results[1])
	}

	del, err := s.Delete(ctx, recordsvc.Courses, []int64{physicsID, 12345})
	if err != nil {
		t.Fatal(err)
	}
	if len(del.Succeeded()) != 1 || len(del.Failed()) != 1 {
		t.Fatalf("delete: %+v", del.Results)
	}
	got, err := s.GetByID(ctx, recordsvc.Courses, physicsID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Success {
		t.Fatal("курс должен быть удалён")
	}
}

func TestRecordStore_SeedDemo(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s := db.NewRecordStore(h.DB)
	if ok, err := db.SeedDemo(ctx, s, time.Now()); err != nil || !ok {
		t.Fatalf("seed: %v %v", ok, err)
	}
	res, err := s.List(ctx, recordsvc.Students, recordsvc.ListParams{OrderBy: []recordsvc.Order{{Field: "last_name"}}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 || res.Data[0]["last_name"] != "Brooks" {
		t.Fatalf("студенты: %+v", res.Data)
	}
	if err := h.Truncate(ctx); err != nil {
		t.Fatal(err)
	}
}
