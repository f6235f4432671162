package models

import (
	"fmt"
	"time"
)

// SemesterLabel — подпись семестра по умолчанию для новой формы курса:
// "Fall 2026" с сентября по декабрь, "Spring 2027" с января по август.
func SemesterLabel(t time.Time) string {
	if t.Month() >= time.September {
		return fmt.Sprintf("Fall %d", t.Year())
	}
	return fmt.Sprintf("Spring %d", t.Year())
}
