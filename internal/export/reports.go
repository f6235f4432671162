package export

import (
	"time"

	"github.com/Spok95/studysync/internal/grades"
	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
)

// Grades — лист по курсам и итоговый GPA.
func Grades(courses []models.Course, assignments []models.Assignment) (*Workbook, error) {
	sum := grades.Summarize(courses, assignments)

	rows := make([][]any, 0, len(sum.Courses))
	for _, r := range sum.Courses {
		var pct any
		if r.Percentage != nil {
			pct = *r.Percentage
		}
		rows = append(rows, []any{r.Course.Name, r.Course.Instructor, r.Course.Semester, r.Course.Credits, r.Graded, r.Total, pct, r.Letter})
	}
	gpa := "N/A"
	if sum.GPAText != "" {
		gpa = sum.GPAText
	}
	return NewWorkbook([]Sheet{
		{
			Title:  "Courses",
			Header: []string{"Course", "Instructor", "Semester", "Credits", "Graded", "Assignments", "Percentage", "Letter"},
			Rows:   rows,
		},
		{
			Title:  "Summary",
			Header: []string{"Overall GPA", "Graded credits", "Courses"},
			Rows:   [][]any{{gpa, sum.Credits, len(courses)}},
		},
	})
}

// Assignments — задания в порядке списка (просроченные, затем по сроку).
func Assignments(assignments []models.Assignment, courses []models.Course, f planner.Filter, now time.Time, loc *time.Location) (*Workbook, error) {
	list := planner.Apply(assignments, courses, f, now)
	rows := make([][]any, 0, len(list))
	for _, a := range list {
		course := ""
		if c, ok := models.CourseByID(courses, a.CourseID); ok {
			course = c.Name
		}
		var grade, pct any
		if a.Grade != nil {
			grade = *a.Grade
		}
		if a.Graded() {
			pct = grades.Round(a.Percent())
		}
		rows = append(rows, []any{
			a.Title, course, a.DueDate.In(loc).Format("2006-01-02 15:04"), string(a.Priority),
			string(a.StatusAt(now)), grade, a.MaxPoints, pct,
		})
	}
	return NewWorkbook([]Sheet{{
		Title:  "Assignments",
		Header: []string{"Title", "Course", "Due", "Priority", "Status", "Grade", "Max points", "Percent"},
		Rows:   rows,
	}})
}

func Students(students []models.Student) (*Workbook, error) {
	rows := make([][]any, 0, len(students))
	for _, s := range students {
		var dob, level any
		if s.DateOfBirth != nil {
			dob = s.DateOfBirth.Format("2006-01-02")
		}
		if s.GradeLevel != nil {
			level = *s.GradeLevel
		}
		rows = append(rows, []any{s.LastName, s.FirstName, s.Email, s.Phone, dob, s.Address, level, s.AmountPaid})
	}
	return NewWorkbook([]Sheet{{
		Title:  "Students",
		Header: []string{"Last name", "First name", "Email", "Phone", "Date of birth", "Address", "Grade level", "Amount paid"},
		Rows:   rows,
	}})
}
