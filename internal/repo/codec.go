package repo

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
)

const dateLayout = "2006-01-02"

var (
	studentFields = []string{
		"first_name", "last_name", "email", "phone", "date_of_birth", "address", "grade_level", "amount_paid",
	}
	courseFields = []string{
		"name", "instructor", "credits", "schedule", "semester", "color",
	}
	assignmentFields = []string{
		"title", "description", "due_date", "priority", "completed", "grade", "max_points", "course_id",
	}
)

func str(r recordsvc.Record, k string) string {
	switch v := r[k].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		b, _ := json.Marshal(v)
		return strings.Trim(string(b), `"`)
	}
}

func num(v any) (float64, bool) {
	if f, ok := recordsvc.Number(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

func float(r recordsvc.Record, k string) float64 {
	f, _ := num(r[k])
	return f
}

func optFloat(r recordsvc.Record, k string) *float64 {
	f, ok := num(r[k])
	if !ok {
		return nil
	}
	return &f
}

func optInt(r recordsvc.Record, k string) *int {
	f, ok := num(r[k])
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func boolean(r recordsvc.Record, k string) bool {
	switch v := r[k].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// decodeCourseRef приводит ссылку на курс к одному виду. Хранилище отдаёт
// её числом, строкой с числом или вложенным объектом {"id": n} (бывает и "Id").
func decodeCourseRef(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case map[string]any:
		for _, k := range []string{"id", "Id", "ID"} {
			if inner, ok := x[k]; ok {
				return decodeCourseRef(inner)
			}
		}
		return 0, false
	case recordsvc.Record:
		return decodeCourseRef(map[string]any(x))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil && n > 0
	}
	f, ok := recordsvc.Number(v)
	if !ok || f <= 0 || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func decodeStudent(r recordsvc.Record) models.Student {
	id, _ := recordsvc.ID(r)
	s := models.Student{
		ID:         id,
		FirstName:  str(r, "first_name"),
		LastName:   str(r, "last_name"),
		Email:      str(r, "email"),
		Phone:      str(r, "phone"),
		Address:    str(r, "address"),
		GradeLevel: optInt(r, "grade_level"),
		AmountPaid: float(r, "amount_paid"),
	}
	if t, ok := parseTime(str(r, "date_of_birth")); ok {
		s.DateOfBirth = &t
	}
	return s
}

func encodeStudent(s models.Student) recordsvc.Record {
	r := recordsvc.Record{
		"first_name":    s.FirstName,
		"last_name":     s.LastName,
		"email":         s.Email,
		"phone":         s.Phone,
		"address":       s.Address,
		"amount_paid":   s.AmountPaid,
		"date_of_birth": nil,
		"grade_level":   nil,
	}
	if s.DateOfBirth != nil {
		r["date_of_birth"] = s.DateOfBirth.Format(dateLayout)
	}
	if s.GradeLevel != nil {
		r["grade_level"] = *s.GradeLevel
	}
	if s.ID != 0 {
		r[recordsvc.FieldID] = s.ID
	}
	return r
}

func decodeCourse(r recordsvc.Record) models.Course {
	id, _ := recordsvc.ID(r)
	return models.Course{
		ID:         id,
		Name:       str(r, "name"),
		Instructor: str(r, "instructor"),
		Credits:    int(float(r, "credits")),
		Schedule:   str(r, "schedule"),
		Semester:   str(r, "semester"),
		Color:      models.Color(str(r, "color")),
	}
}

func encodeCourse(c models.Course) recordsvc.Record {
	r := recordsvc.Record{
		"name":       c.Name,
		"instructor": c.Instructor,
		"credits":    c.Credits,
		"schedule":   c.Schedule,
		"semester":   c.Semester,
		"color":      string(c.Color),
	}
	if c.ID != 0 {
		r[recordsvc.FieldID] = c.ID
	}
	return r
}

func decodeAssignment(r recordsvc.Record) models.Assignment {
	id, _ := recordsvc.ID(r)
	a := models.Assignment{
		ID:          id,
		Title:       str(r, "title"),
		Description: str(r, "description"),
		Priority:    models.Priority(str(r, "priority")),
		Completed:   boolean(r, "completed"),
		Grade:       optFloat(r, "grade"),
		MaxPoints:   float(r, "max_points"),
	}
	if t, ok := parseTime(str(r, "due_date")); ok {
		a.DueDate = t
	}
	a.CourseID, _ = decodeCourseRef(r["course_id"])
	return a
}

func encodeAssignment(a models.Assignment) recordsvc.Record {
	r := recordsvc.Record{
		"title":       a.Title,
		"description": a.Description,
		"due_date":    a.DueDate.UTC().Format(time.RFC3339),
		"priority":    string(a.Priority),
		"completed":   a.Completed,
		"grade":       nil,
		"max_points":  a.MaxPoints,
		"course_id":   a.CourseID,
	}
	if a.Grade != nil {
		r["grade"] = *a.Grade
	}
	if a.ID != 0 {
		r[recordsvc.FieldID] = a.ID
	}
	return r
}
