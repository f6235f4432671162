package web

import (
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/models"
)

var studentMessages = messages{
	"first_name":      "First name is required",
	"last_name":       "Last name is required",
	"email.required":  "Email is required",
	"email.notblank":  "Email is required",
	"email.email":     "Please enter a valid email address",
	"date_of_birth":   "Date of birth must be a date (YYYY-MM-DD)",
	"grade_level":     "Grade level must be between 1 and 12",
	"amount_paid.min": "Amount paid cannot be negative",
}

type StudentForm struct {
	FirstName   string `json:"first_name" validate:"notblank"`
	LastName    string `json:"last_name" validate:"notblank"`
	Email       string `json:"email" validate:"notblank,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address     string `json:"address"`
	GradeLevel  Number `json:"grade_level" validate:"omitempty,min=1,max=12"`
	AmountPaid  Number `json:"amount_paid" validate:"omitempty,min=0"`
}

func (f *StudentForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.Address = strings.TrimSpace(f.Address)
}

func (f *StudentForm) Validate(v *validators) error {
	f.normalize()
	var pre []FieldError
	// omitempty у Number пропускает явный 0, поэтому диапазон проверяем здесь.
	if g, ok := f.GradeLevel.Float(); f.GradeLevel.Invalid() || (ok && (g < 1 || g > 12 || g != float64(int(g)))) {
		pre = append(pre, FieldError{"grade_level", studentMessages["grade_level"]})
	}
	if f.AmountPaid.Invalid() {
		pre = append(pre, FieldError{"amount_paid", "Amount paid must be a valid number"})
	}
	return v.check(f, studentMessages, pre...)
}

func (f *StudentForm) Model(id int64) models.Student {
	s := models.Student{
		ID: id, FirstName: f.FirstName, LastName: f.LastName, Email: f.Email,
		Phone: f.Phone, Address: f.Address,
	}
	if t, err := time.Parse("2006-01-02", f.DateOfBirth); err == nil {
		s.DateOfBirth = &t
	}
	if g, ok := f.GradeLevel.Float(); ok {
		n := int(g)
		s.GradeLevel = &n
	}
	if a, ok := f.AmountPaid.Float(); ok {
		s.AmountPaid = a
	}
	return s
}

var courseMessages = messages{
	"name":       "Course name is required",
	"instructor": "Instructor is required",
	"schedule":   "Schedule is required",
	"semester":   "Semester is required",
	"credits":    "Credits must be between 1 and 6",
	"color":      "Color must be one of: blue, green, purple, red, yellow, indigo, pink, orange",
}

type CourseForm struct {
	Name       string `json:"name" validate:"notblank"`
	Instructor string `json:"instructor" validate:"notblank"`
	Credits    Number `json:"credits" validate:"required,min=1,max=6"`
	Schedule   string `json:"schedule" validate:"notblank"`
	Semester   string `json:"semester" validate:"notblank"`
	Color      string `json:"color" validate:"omitempty,oneof=blue green purple red yellow indigo pink orange"`
}

func (f *CourseForm) Validate(v *validators) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Instructor = strings.TrimSpace(f.Instructor)
	f.Schedule = strings.TrimSpace(f.Schedule)
	f.Semester = strings.TrimSpace(f.Semester)
	f.Color = strings.ToLower(strings.TrimSpace(f.Color))

	var pre []FieldError
	if c, ok := f.Credits.Float(); f.Credits.Invalid() || (ok && c != float64(int(c))) {
		pre = append(pre, FieldError{"credits", courseMessages["credits"]})
	}
	return v.check(f, courseMessages, pre...)
}

func (f *CourseForm) Model(id int64) models.Course {
	c, _ := f.Credits.Float()
	color := models.Color(f.Color)
	if color == "" {
		color = models.ColorBlue
	}
	return models.Course{
		ID: id, Name: f.Name, Instructor: f.Instructor, Credits: int(c),
		Schedule: f.Schedule, Semester: f.Semester, Color: color,
	}
}

var assignmentMessages = messages{
	"title":      "Assignment title is required",
	"course_id":  "Course selection is required",
	"due_date":   "Due date is required",
	"priority":   "Priority must be one of: low, medium, high",
	"grade":      "Grade must be a valid number",
	"grade.min":  "Grade cannot be negative",
	"max_points": "Max points must be a positive number",
}

const (
	gradeExceedsMax = "Grade cannot exceed max points"
	defaultMaxPts   = 100
)

type AssignmentForm struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	CourseID    Number `json:"course_id" validate:"required,gt=0"`
	DueDate     string `json:"due_date" validate:"notblank"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Completed   bool   `json:"completed"`
	Grade       Number `json:"grade" validate:"omitempty,min=0"`
	MaxPoints   Number `json:"max_points" validate:"omitempty,gt=0"`

	due time.Time
}

// dueLayouts — форматы срока: полный RFC3339, поле datetime-local и просто дата.
var dueLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDue(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f *AssignmentForm) Validate(v *validators, loc *time.Location) error {
	f.Title = strings.TrimSpace(f.Title)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Priority = strings.ToLower(strings.TrimSpace(f.Priority))

	var pre []FieldError
	if f.CourseID.Invalid() {
		pre = append(pre, FieldError{"course_id", assignmentMessages["course_id"]})
	}
	if f.DueDate != "" {
		t, ok := parseDue(f.DueDate, loc)
		if !ok {
			pre = append(pre, FieldError{"due_date", "Due date is invalid"})
		}
		f.due = t
	}
	if f.Grade.Invalid() {
		pre = append(pre, FieldError{"grade", assignmentMessages["grade"]})
	}
	if m, ok := f.MaxPoints.Float(); f.MaxPoints.Invalid() || (ok && m <= 0) {
		pre = append(pre, FieldError{"max_points", assignmentMessages["max_points"]})
	}
	if g, ok := f.Grade.Float(); ok {
		if m, ok := f.maxPoints(); ok && m > 0 && g > m {
			pre = append(pre, FieldError{"grade", gradeExceedsMax})
		}
	}
	return v.check(f, assignmentMessages, pre...)
}

func (f *AssignmentForm) maxPoints() (float64, bool) {
	if !f.MaxPoints.Set {
		return defaultMaxPts, true
	}
	return f.MaxPoints.Float()
}

func (f *AssignmentForm) Model(id int64) models.Assignment {
	courseID, _ := f.CourseID.Float()
	maxPts, _ := f.maxPoints()
	p := models.Priority(f.Priority)
	if p == "" {
		p = models.PriorityMedium
	}
	a := models.Assignment{
		ID: id, Title: f.Title, Description: strings.TrimSpace(f.Description),
		DueDate: f.due, Priority: p, Completed: f.Completed,
		MaxPoints: maxPts, CourseID: int64(courseID),
	}
	if g, ok := f.Grade.Float(); ok {
		a.Grade = &g
	}
	return a
}

var gradeMessages = messages{
	"grade.required": "Grade is required",
	"grade":          "Grade must be a valid number",
	"grade.min":      "Grade cannot be negative",
	"max_points":     "Max points must be a positive number",
}

// GradeForm — выставление оценки. Пустой grade с clear=true снимает оценку.
type GradeForm struct {
	Grade     Number `json:"grade" validate:"omitempty,min=0"`
	MaxPoints Number `json:"max_points" validate:"required,gt=0"`
	Clear     bool   `json:"clear"`
}

func (f *GradeForm) Validate(v *validators) error {
	var pre []FieldError
	switch {
	case f.Grade.Invalid():
		pre = append(pre, FieldError{"grade", gradeMessages["grade"]})
	case !f.Grade.Set && !f.Clear:
		pre = append(pre, FieldError{"grade", gradeMessages["grade.required"]})
	}
	if f.MaxPoints.Invalid() {
		pre = append(pre, FieldError{"max_points", gradeMessages["max_points"]})
	}
	if g, ok := f.Grade.Float(); ok && !f.Clear {
		if m, ok := f.MaxPoints.Float(); ok && m > 0 && g > m {
			pre = append(pre, FieldError{"grade", gradeExceedsMax})
		}
	}
	return v.check(f, gradeMessages, pre...)
}

func (f *GradeForm) Values() (*float64, float64) {
	m, _ := f.MaxPoints.Float()
	if f.Clear {
		return nil, m
	}
	g, ok := f.Grade.Float()
	if !ok {
		return nil, m
	}
	return &g, m
}
