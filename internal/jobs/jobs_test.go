package jobs

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Spok95/studysync/internal/metrics"
	"github.com/Spok95/studysync/internal/models"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type staticAssignments []models.Assignment

func (s staticAssignments) List(context.Context) []models.Assignment { return s }

type staticCourses []models.Course

func (s staticCourses) List(context.Context, ...recordsvc.Order) []models.Course { return s }

type recorder struct {
	texts []string
	err   error
}

func (r *recorder) Notify(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func digestFixture(n *recorder, list []models.Assignment) *Digest {
	return &Digest{
		Assignments: staticAssignments(list),
		Courses:     staticCourses{{ID: 1, Name: "Physics & Lab"}},
		Notifier:    n,
		SoonDays:    3,
		Now:         func() time.Time { return now },
		MaxItems:    2,
	}
}

func TestDigestSendsOverdueAndSoon(t *testing.T) {
	n := &recorder{}
	d := digestFixture(n, []models.Assignment{
		{ID: 1, Title: "newest", DueDate: now.AddDate(0, 0, -2), CourseID: 1},
		{ID: 2, Title: "older", DueDate: now.AddDate(0, 0, -5), CourseID: 1},
		{ID: 3, Title: "<draft> essay", DueDate: now.AddDate(0, 0, -9), CourseID: 1},
		{ID: 4, Title: "soon", DueDate: now.Add(30 * time.Hour), CourseID: 1},
		{ID: 5, Title: "done", DueDate: now.AddDate(0, 0, -1), Completed: true},
		{ID: 6, Title: "far", DueDate: now.AddDate(0, 0, 20)},
	})

	sentBefore := testutil.ToFloat64(digestsSent)
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(digestsSent) - sentBefore; got != 1 {
		t.Fatalf("счётчик отправок: %v", got)
	}
	if got := testutil.ToFloat64(metrics.OverdueAssignments); got != 3 {
		t.Fatalf("gauge overdue: %v", got)
	}
	if got := testutil.ToFloat64(metrics.DueSoonAssignments); got != 1 {
		t.Fatalf("gauge due soon: %v", got)
	}
	if len(n.texts) != 1 {
		t.Fatalf("ожидали одно сообщение, получили %d", len(n.texts))
	}
	msg := n.texts[0]
	for _, want := range []string{"Overdue: 3", "&lt;draft&gt; essay", "Physics &amp; Lab", "and 1 more", "Due within 3 days: 1", "soon"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("в сообщении нет %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "far") || strings.Contains(msg, "done") || strings.Contains(msg, "newest") {
		t.Fatalf("лишние задания в сводке:\n%s", msg)
	}
	// просроченные: сначала самые ранние
	if strings.Index(msg, "draft") > strings.Index(msg, "older") {
		t.Fatalf("порядок просроченных нарушен:\n%s", msg)
	}
}

func TestDigestQuietWhenNothingDue(t *testing.T) {
	n := &recorder{}
	d := digestFixture(n, []models.Assignment{{ID: 1, DueDate: now.AddDate(0, 0, 10)}})
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(n.texts) != 0 {
		t.Fatal("без сроков сообщение не отправляется")
	}
}

func TestDigestNotifyError(t *testing.T) {
	n := &recorder{err: errors.New("503 Service Unavailable")}
	d := digestFixture(n, []models.Assignment{{ID: 1, DueDate: now.AddDate(0, 0, -1)}})
	if err := d.Run(context.Background()); err == nil {
		t.Fatal("ожидали ошибку отправки")
	}
}

func TestRunnerEveryImmediateAndRecover(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx, nil)

	var calls atomic.Int32
	r.Every(time.Hour, "test_job", true, func(context.Context) error {
		if calls.Add(1) == 1 {
			panic("boom")
		}
		return nil
	})
	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	r.Wait()
	if calls.Load() != 1 {
		t.Fatalf("ожидали один немедленный запуск, получили %d", calls.Load())
	}
	if got := testutil.ToFloat64(jobRuns.WithLabelValues("test_job", "panic")); got != 1 {
		t.Fatalf("паника должна учитываться отдельно: %v", got)
	}
}
