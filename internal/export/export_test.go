package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
	"github.com/xuri/excelize/v2"
)

func TestColName(t *testing.T) {
	for n, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"} {
		if got := colName(n); got != want {
			t.Fatalf("colName(%d): ожидали %s, получили %s", n, want, got)
		}
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	if got := Filename("grades/report", at); got != "StudySync grades_report 2026-10-19.xlsx" {
		t.Fatalf("получили %q", got)
	}
}

func reopen(t *testing.T, w *Workbook) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestGradesWorkbook(t *testing.T) {
	g1, g2 := 95.0, 85.0
	courses := []models.Course{
		{ID: 1, Name: "Physics", Credits: 4},
		{ID: 2, Name: "Algebra", Credits: 2},
		{ID: 3, Name: "Art", Credits: 1},
	}
	assignments := []models.Assignment{
		{ID: 1, CourseID: 1, Grade: &g1, MaxPoints: 100},
		{ID: 2, CourseID: 2, Grade: &g2, MaxPoints: 100},
		{ID: 3, CourseID: 3, MaxPoints: 100},
	}
	w, err := Grades(courses, assignments)
	if err != nil {
		t.Fatal(err)
	}
	f := reopen(t, w)

	rows, err := f.GetRows("Courses")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("ожидали шапку и 3 строки, получили %d", len(rows))
	}
	if rows[1][0] != "Physics" || rows[1][6] != "95" || rows[1][7] != "A" {
		t.Fatalf("строка Physics: %v", rows[1])
	}
	if len(rows[3]) > 6 && rows[3][6] != "" {
		t.Fatalf("у курса без оценок процент должен быть пустым: %v", rows[3])
	}
	gpa, _ := f.GetCellValue("Summary", "A2")
	if gpa != "3.77" {
		t.Fatalf("GPA: ожидали 3.77, получили %s", gpa)
	}
}

func TestAssignmentsWorkbookOrder(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	assignments := []models.Assignment{
		{ID: 1, Title: "tomorrow", DueDate: now.AddDate(0, 0, 1), Priority: models.PriorityLow, CourseID: 1},
		{ID: 2, Title: "yesterday", DueDate: now.AddDate(0, 0, -1), Priority: models.PriorityLow, CourseID: 1},
	}
	courses := []models.Course{{ID: 1, Name: "Physics"}}
	w, err := Assignments(assignments, courses, planner.Filter{}, now, time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := reopen(t, w).GetRows("Assignments")
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][0] != "yesterday" || rows[1][4] != "overdue" || rows[1][1] != "Physics" {
		t.Fatalf("первая строка: %v", rows[1])
	}
	if rows[2][0] != "tomorrow" {
		t.Fatalf("вторая строка: %v", rows[2])
	}
}

func TestStudentsWorkbook(t *testing.T) {
	lvl := 10
	w, err := Students([]models.Student{{FirstName: "Ava", LastName: "Nguyen", GradeLevel: &lvl, AmountPaid: 1200}})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := reopen(t, w).GetRows("Students")
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][0] != "Nguyen" || rows[1][6] != "10" {
		t.Fatalf("строка студента: %v", rows[1])
	}
}
