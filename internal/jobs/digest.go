package jobs

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/metrics"
	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/planner"
	"github.com/Spok95/studysync/internal/recordsvc"
)

type AssignmentLister interface {
	List(ctx context.Context) []models.Assignment
}

type CourseLister interface {
	List(ctx context.Context, order ...recordsvc.Order) []models.Course
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Digest — сводка по срокам: обновляет метрики и, если задан
// Notifier, отправляет список просроченных и ближайших заданий.
type Digest struct {
	Assignments AssignmentLister
	Courses     CourseLister
	Notifier    Notifier
	SoonDays    int
	Location    *time.Location
	Now         func() time.Time
	// MaxItems — строк в каждом разделе сообщения.
	MaxItems int
}

func (d *Digest) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Digest) Run(ctx context.Context) error {
	now := d.now()
	assignments := d.Assignments.List(ctx)
	stats := planner.Summarize(assignments, now, d.SoonDays)
	metrics.OverdueAssignments.Set(float64(stats.Overdue))
	metrics.DueSoonAssignments.Set(float64(stats.DueSoon))

	if d.Notifier == nil || (stats.Overdue == 0 && stats.DueSoon == 0) {
		return nil
	}
	text := d.Message(assignments, d.Courses.List(ctx), now)
	if err := d.Notifier.Notify(ctx, text); err != nil {
		return fmt.Errorf("digest notify: %w", err)
	}
	digestsSent.Inc()
	return nil
}

// Message — HTML-текст сводки.
func (d *Digest) Message(assignments []models.Assignment, courses []models.Course, now time.Time) string {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	limit := d.MaxItems
	if limit <= 0 {
		limit = 5
	}

	var overdue []models.Assignment
	for _, a := range assignments {
		if a.StatusAt(now) == models.StatusOverdue {
			overdue = append(overdue, a)
		}
	}
	planner.Sort(overdue, now)
	soon := planner.Upcoming(assignments, now, d.SoonDays, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "<b>StudySync digest</b> (%s)\n", now.In(loc).Format("Mon, Jan 2"))
	section := func(title string, list []models.Assignment, total int) {
		if total == 0 {
			return
		}
		fmt.Fprintf(&b, "\n<b>%s: %d</b>\n", title, total)
		for i, a := range list {
			if i == limit {
				fmt.Fprintf(&b, "… and %d more\n", total-limit)
				break
			}
			course := ""
			if c, ok := models.CourseByID(courses, a.CourseID); ok {
				course = " · " + html.EscapeString(c.Name)
			}
			fmt.Fprintf(&b, "• %s%s — %s (%s)\n",
				html.EscapeString(a.Title), course, a.DueDate.In(loc).Format("Jan 2 15:04"),
				planner.DueBadge(a, now).Text)
		}
	}
	section("Overdue", overdue, len(overdue))
	section(fmt.Sprintf("Due within %d days", d.SoonDays), soon, len(soon))
	return strings.TrimRight(b.String(), "\n")
}
