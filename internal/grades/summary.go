package grades

import "github.com/Spok95/studysync/internal/models"

type CourseRow struct {
	Course     models.Course `json:"course"`
	Percentage *int          `json:"percentage"`
	Letter     string        `json:"letter,omitempty"`
	Color      string        `json:"color,omitempty"`
	Graded     int           `json:"graded"`
	Total      int           `json:"total"`
}

type Summary struct {
	Courses []CourseRow `json:"courses"`
	GPA     *float64    `json:"gpa"`
	GPAText string      `json:"gpa_text"`
	Credits int         `json:"graded_credits"`
}

// Summarize — строки по курсам и общий GPA для экрана оценок.
func Summarize(courses []models.Course, assignments []models.Assignment) Summary {
	s := Summary{Courses: make([]CourseRow, 0, len(courses))}
	for _, c := range courses {
		row := CourseRow{Course: c}
		for _, a := range assignments {
			if a.CourseID != c.ID {
				continue
			}
			row.Total++
			if a.Graded() {
				row.Graded++
			}
		}
		if pct, ok := CoursePercentage(c.ID, assignments); ok {
			row.Percentage = &pct
			row.Letter = Letter(float64(pct))
			row.Color = Color(float64(pct))
			s.Credits += c.Credits
		}
		s.Courses = append(s.Courses, row)
	}
	if gpa, ok := OverallGPA(courses, assignments); ok {
		s.GPA = &gpa
		s.GPAText = FormatGPA(gpa, ok)
	}
	return s
}
