//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/db"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/Spok95/studysync/internal/testutil/testdb"
)

func mustCourse(tb testing.TB, s *db.RecordStore, name string) int64 {
	tb.Helper()
	res, err := s.Create(context.Background(), recordsvc.Courses, []recordsvc.Record{
		{"name": name, "instructor": "Bench", "credits": 3, "semester": "Fall 2026", "color": "blue"},
	})
	if err != nil || len(res.Failed()) > 0 {
		tb.Fatalf("создание курса: %v %+v", err, res)
	}
	id, _ := recordsvc.ID(res.Results[0].Data)
	return id
}

func TestRecordStore_ParallelCreateToggle(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s := db.NewRecordStore(h.DB)
	courseID := mustCourse(t, s, "Параллельный")
	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Create(context.Background(), recordsvc.Assignments, []recordsvc.Record{
				{"title": fmt.Sprintf("task %d", i), "course_id": courseID, "due_date": due, "priority": "high", "max_points": 100},
			})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.List(context.Background(), recordsvc.Assignments, recordsvc.ListParams{
				Where: []recordsvc.Where{{Field: "course_id", Operator: recordsvc.EqualTo, Values: []any{courseID}}},
			})
		}()
	}
	wg.Wait()

	res, err := s.List(context.Background(), recordsvc.Assignments, recordsvc.ListParams{
		Where: []recordsvc.Where{{Field: "course_id", Operator: recordsvc.EqualTo, Values: []any{courseID}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Data) != 50 || res.Total != 50 {
		t.Fatalf("ожидали 50 заданий, получили %d (total %d)", len(res.Data), res.Total)
	}

	// параллельные обновления разных записей не теряются
	wg = sync.WaitGroup{}
	for _, r := range res.Data {
		id, _ := recordsvc.ID(r)
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = s.Update(context.Background(), recordsvc.Assignments, []recordsvc.Record{{"id": id, "completed": true}})
		}(id)
	}
	wg.Wait()

	done, err := s.List(context.Background(), recordsvc.Assignments, recordsvc.ListParams{
		Where: []recordsvc.Where{{Field: "completed", Operator: recordsvc.EqualTo, Values: []any{true}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(done.Data) != 50 {
		t.Fatalf("ожидали 50 выполненных, получили %d", len(done.Data))
	}
}

func BenchmarkRecordStore_List(b *testing.B) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		b.Fatal(err)
	}
	defer h.Close()

	s := db.NewRecordStore(h.DB)
	courseID := mustCourse(b, s, "Бенч")
	due := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	batch := make([]recordsvc.Record, 0, 200)
	for i := 0; i < 200; i++ {
		batch = append(batch, recordsvc.Record{"title": fmt.Sprintf("bench %d", i), "course_id": courseID, "due_date": due})
	}
	if _, err := s.Create(context.Background(), recordsvc.Assignments, batch); err != nil {
		b.Fatal(err)
	}

	p := recordsvc.ListParams{
		Where:   []recordsvc.Where{{Field: "course_id", Operator: recordsvc.EqualTo, Values: []any{courseID}}},
		OrderBy: []recordsvc.Order{{Field: "due_date"}},
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := s.List(context.Background(), recordsvc.Assignments, p); err != nil {
				b.Fatal(err)
			}
		}
	})
}
