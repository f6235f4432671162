package web

import (
	"time"

	"github.com/Spok95/studysync/internal/grades"
	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
)

// AssignmentView — задание с вычисленными полями для карточки.
type AssignmentView struct {
	models.Assignment
	CourseName  string        `json:"course_name"`
	CourseColor string        `json:"course_color"`
	Status      models.Status `json:"status"`
	Badge       planner.Badge `json:"badge"`
	Percent     *int          `json:"percent"`
	Letter      string        `json:"letter,omitempty"`
}

type courseIndex map[int64]models.Course

func indexCourses(courses []models.Course) courseIndex {
	idx := make(courseIndex, len(courses))
	for _, c := range courses {
		idx[c.ID] = c
	}
	return idx
}

func (idx courseIndex) assignmentView(a models.Assignment, now time.Time) AssignmentView {
	v := AssignmentView{
		Assignment:  a,
		CourseName:  "Unknown course",
		CourseColor: models.Color("").Class(),
		Status:      a.StatusAt(now),
		Badge:       planner.DueBadge(a, now),
	}
	if c, ok := idx[a.CourseID]; ok {
		v.CourseName = c.Name
		v.CourseColor = c.Color.Class()
	}
	if a.Graded() {
		p := grades.Round(a.Percent())
		v.Percent = &p
		v.Letter = grades.Letter(float64(p))
	}
	return v
}

func (idx courseIndex) assignmentViews(list []models.Assignment, now time.Time) []AssignmentView {
	out := make([]AssignmentView, 0, len(list))
	for _, a := range list {
		out = append(out, idx.assignmentView(a, now))
	}
	return out
}
