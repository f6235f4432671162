// Package grades считает процент по курсу, буквенную оценку и средневзвешенный GPA.
package grades

import (
	"fmt"
	"math"

	"github.com/Spok95/studysync/internal/models"
)

type threshold[T any] struct {
	Min   float64
	Value T
}

// Пороги проверяются сверху вниз, первое совпадение выигрывает.
var letters = []threshold[string]{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{65, "D"},
}

// Шкала 4.0. Диапазон 85–86 считается 3.3, ниже 85 — 3.0.
var points = []threshold[float64]{
	{93, 4.0},
	{90, 3.7},
	{85, 3.3},
	{83, 3.0},
	{80, 2.7},
	{77, 2.3},
	{73, 2.0},
	{70, 1.7},
	{67, 1.3},
	{65, 1.0},
}

func lookup[T any](table []threshold[T], pct float64, def T) T {
	for _, t := range table {
		if pct >= t.Min {
			return t.Value
		}
	}
	return def
}

// Letter — буквенная оценка для процента.
func Letter(pct float64) string { return lookup(letters, pct, "F") }

// Points — балл по шкале 4.0 для процента.
func Points(pct float64) float64 { return lookup(points, pct, 0) }

// Color — тон для отображения процента.
func Color(pct float64) string {
	switch {
	case pct >= 90:
		return "success"
	case pct >= 80:
		return "primary"
	case pct >= 70:
		return "warning"
	}
	return "error"
}

// Round — округление половины вверх, как в интерфейсе.
func Round(x float64) int { return int(math.Floor(x + 0.5)) }

// CoursePercentage — среднее по оценённым заданиям курса, округлённое до целого.
// ok=false, если в курсе нет ни одной оценки.
func CoursePercentage(courseID int64, assignments []models.Assignment) (pct int, ok bool) {
	var sum float64
	var n int
	for _, a := range assignments {
		if a.CourseID != courseID || !a.Graded() {
			continue
		}
		sum += a.Percent()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return Round(sum / float64(n)), true
}

// OverallGPA — GPA, взвешенный по кредитам курсов, у которых есть хотя бы одна оценка.
// ok=false (а не 0), если таких курсов нет.
func OverallGPA(courses []models.Course, assignments []models.Assignment) (gpa float64, ok bool) {
	var total float64
	var credits int
	for _, c := range courses {
		pct, graded := CoursePercentage(c.ID, assignments)
		if !graded {
			continue
		}
		total += Points(float64(pct)) * float64(c.Credits)
		credits += c.Credits
	}
	if credits <= 0 {
		return 0, false
	}
	return total / float64(credits), true
}

// FormatGPA — две цифры после запятой; пустая строка для неопределённого GPA.
func FormatGPA(gpa float64, ok bool) string {
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f", gpa)
}

// AverageGrade — средний процент по всем оценённым заданиям (дашборд).
func AverageGrade(assignments []models.Assignment) (pct int, ok bool) {
	var sum float64
	var n int
	for _, a := range assignments {
		if !a.Graded() {
			continue
		}
		sum += a.Percent()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return Round(sum / float64(n)), true
}
