package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/studysync/internal/recordsvc"
)

// SeedDemo заполняет пустое хранилище демонстрационными данными.
// Если курсы уже есть, ничего не делает. Работает с любым бэкендом.
func SeedDemo(ctx context.Context, c recordsvc.Client, now time.Time) (bool, error) {
	existing, err := c.List(ctx, recordsvc.Courses, recordsvc.ListParams{Limit: 1})
	if err != nil {
		return false, fmt.Errorf("seed: list courses: %w", err)
	}
	if !existing.Success {
		return false, fmt.Errorf("seed: list courses: %s", existing.Message)
	}
	if existing.Total > 0 {
		return false, nil
	}

	courses := []recordsvc.Record{
		{"name": "Calculus I", "instructor": "Dr. Ramirez", "credits": 4, "schedule": "Mon/Wed 9:00", "semester": "Fall 2026", "color": "blue"},
		{"name": "Modern Physics", "instructor": "Prof. Chen", "credits": 3, "schedule": "Tue/Thu 11:00", "semester": "Fall 2026", "color": "purple"},
		{"name": "World Literature", "instructor": "Ms. Okafor", "credits": 2, "schedule": "Fri 13:00", "semester": "Fall 2026", "color": "green"},
	}
	created, err := c.Create(ctx, recordsvc.Courses, courses)
	if err != nil {
		return false, fmt.Errorf("seed: create courses: %w", err)
	}
	if f := created.Failed(); len(f) > 0 {
		return false, fmt.Errorf("seed: create courses: %s", f[0].Message)
	}
	ids := make([]int64, 0, len(created.Results))
	for _, r := range created.Results {
		id, _ := recordsvc.ID(r.Data)
		ids = append(ids, id)
	}

	day := func(n int) string { return now.AddDate(0, 0, n).UTC().Format(time.RFC3339) }
	assignments := []recordsvc.Record{
		{"title": "Limits worksheet", "description": "Sections 2.1-2.3", "due_date": day(-3), "priority": "medium", "completed": true, "grade": 92.0, "max_points": 100.0, "course_id": ids[0]},
		{"title": "Derivatives quiz", "description": "", "due_date": day(2), "priority": "high", "completed": false, "grade": nil, "max_points": 50.0, "course_id": ids[0]},
		{"title": "Lab report: photoelectric effect", "description": "Include error analysis", "due_date": day(-1), "priority": "high", "completed": false, "grade": nil, "max_points": 100.0, "course_id": ids[1]},
		{"title": "Problem set 4", "description": "", "due_date": day(6), "priority": "low", "completed": false, "grade": nil, "max_points": 40.0, "course_id": ids[1]},
		{"title": "Essay: narrative voice", "description": "1500 words", "due_date": day(-8), "priority": "medium", "completed": true, "grade": 85.0, "max_points": 100.0, "course_id": ids[2]},
	}
	if res, err := c.Create(ctx, recordsvc.Assignments, assignments); err != nil {
		return false, fmt.Errorf("seed: create assignments: %w", err)
	} else if f := res.Failed(); len(f) > 0 {
		return false, fmt.Errorf("seed: create assignments: %s", f[0].Message)
	}

	students := []recordsvc.Record{
		{"first_name": "Ava", "last_name": "Nguyen", "email": "ava.nguyen@example.edu", "phone": "555-0101", "date_of_birth": "2010-04-12", "address": "12 Elm St", "grade_level": 10, "amount_paid": 1200.0},
		{"first_name": "Liam", "last_name": "Brooks", "email": "liam.brooks@example.edu", "phone": "555-0102", "date_of_birth": "2011-09-30", "address": "48 Oak Ave", "grade_level": 9, "amount_paid": 850.5},
	}
	if res, err := c.Create(ctx, recordsvc.Students, students); err != nil {
		return false, fmt.Errorf("seed: create students: %w", err)
	} else if f := res.Failed(); len(f) > 0 {
		return false, fmt.Errorf("seed: create students: %s", f[0].Message)
	}
	return true, nil
}
