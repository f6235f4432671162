package planner

import (
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

func TestDueBadge(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		a    models.Assignment
		want string
	}{
		{"completed", models.Assignment{Completed: true, DueDate: now.Add(-time.Hour)}, "Completed"},
		{"overdue", models.Assignment{DueDate: now.Add(-time.Minute)}, "Overdue"},
		{"today", models.Assignment{DueDate: now.Add(5 * time.Hour)}, "Due Today"},
		{"one_day", models.Assignment{DueDate: now.Add(30 * time.Hour)}, "Due in 1 day"},
		{"three_days", models.Assignment{DueDate: now.Add(3*24*time.Hour + time.Hour)}, "Due in 3 days"},
		{"far", models.Assignment{DueDate: now.Add(10 * 24 * time.Hour)}, "Due in 10 days"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DueBadge(c.a, now).Text; got != c.want {
				t.Fatalf("получили %q, ожидали %q", got, c.want)
			}
		})
	}
	if DueBadge(models.Assignment{DueDate: now.Add(10 * 24 * time.Hour)}, now).Tone != "default" {
		t.Fatal("дальний срок должен быть нейтральным")
	}
}

func TestUpcomingAndStats(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	as := []models.Assignment{
		{ID: 1, DueDate: now.Add(6 * 24 * time.Hour)},
		{ID: 2, DueDate: now.Add(2 * time.Hour)},
		{ID: 3, DueDate: now.Add(9 * 24 * time.Hour)},
		{ID: 4, DueDate: now.Add(24 * time.Hour), Completed: true},
		{ID: 5, DueDate: now.Add(-24 * time.Hour)},
		{ID: 6, DueDate: now.Add(3 * 24 * time.Hour)},
		{ID: 7, DueDate: now.Add(4 * 24 * time.Hour)},
	}

	up := Upcoming(as, now, 7, 3)
	if !sameIDs(up, 2, 6, 7) {
		t.Fatalf("ближайшие %v", ids(up))
	}

	s := Summarize(as, now, 7)
	if s.Total != 7 || s.Completed != 1 || s.Pending != 6 || s.Overdue != 1 || s.DueSoon != 4 {
		t.Fatalf("счётчики %+v", s)
	}
	if s.CompletionRate != 14 { // 1/7 = 14.28
		t.Fatalf("процент выполнения %d", s.CompletionRate)
	}
	if Summarize(nil, now, 7).CompletionRate != 0 {
		t.Fatal("пустой список: 0%")
	}
}
