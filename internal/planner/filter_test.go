package planner

import (
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

func ids(as []models.Assignment) []int64 {
	out := make([]int64, 0, len(as))
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func sameIDs(got []models.Assignment, want ...int64) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSort_OverdueFirstThenDueDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	as := []models.Assignment{
		{ID: 3, DueDate: now.Add(24 * time.Hour), Priority: models.PriorityMedium},
		{ID: 2, DueDate: now.Add(time.Hour), Priority: models.PriorityMedium},
		{ID: 1, DueDate: now.Add(-24 * time.Hour), Priority: models.PriorityMedium},
	}
	got := Apply(as, nil, Filter{}, now)
	if !sameIDs(got, 1, 2, 3) {
		t.Fatalf("порядок %v, ожидали [1 2 3]", ids(got))
	}
}

func TestSort_PriorityBreaksTies(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	as := []models.Assignment{
		{ID: 1, DueDate: due, Priority: models.PriorityLow},
		{ID: 2, DueDate: due, Priority: models.PriorityHigh},
		{ID: 3, DueDate: due, Priority: models.PriorityMedium},
	}
	got := Apply(as, nil, Filter{}, now)
	if !sameIDs(got, 2, 3, 1) {
		t.Fatalf("порядок %v, ожидали [2 3 1]", ids(got))
	}
}

func TestSort_CompletedPastIsNotOverdue(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	as := []models.Assignment{
		{ID: 1, DueDate: now.Add(-72 * time.Hour), Completed: true},
		{ID: 2, DueDate: now.Add(-24 * time.Hour)},
	}
	got := Apply(as, nil, Filter{}, now)
	if !sameIDs(got, 2, 1) {
		t.Fatalf("порядок %v, ожидали [2 1]", ids(got))
	}
}

func TestApply_Filters(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	courses := []models.Course{{ID: 10, Name: "Organic Chemistry"}, {ID: 20, Name: "History"}}
	as := []models.Assignment{
		{ID: 1, Title: "Lab report", CourseID: 10, Priority: models.PriorityHigh, DueDate: now.Add(-time.Hour)},
		{ID: 2, Title: "Essay", Description: "WWII causes", CourseID: 20, Priority: models.PriorityLow, DueDate: now.Add(time.Hour)},
		{ID: 3, Title: "Quiz", CourseID: 10, Completed: true, DueDate: now.Add(-48 * time.Hour)},
	}

	t.Run("search_title_case_insensitive", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Search: "LAB"}, now); !sameIDs(got, 1) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("search_description", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Search: "wwii"}, now); !sameIDs(got, 2) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("search_course_name", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Search: "chem"}, now); !sameIDs(got, 1, 3) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("course", func(t *testing.T) {
		if got := Apply(as, courses, Filter{CourseID: 20}, now); !sameIDs(got, 2) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("priority", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Priority: models.PriorityHigh}, now); !sameIDs(got, 1) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("status_overdue_excludes_completed", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Status: models.StatusOverdue}, now); !sameIDs(got, 1) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("status_completed", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Status: models.StatusCompleted}, now); !sameIDs(got, 3) {
			t.Fatalf("получили %v", ids(got))
		}
	})
	t.Run("status_pending", func(t *testing.T) {
		if got := Apply(as, courses, Filter{Status: models.StatusPending}, now); !sameIDs(got, 2) {
			t.Fatalf("получили %v", ids(got))
		}
	})
}
