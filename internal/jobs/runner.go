package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Spok95/studysync/internal/observability"
	"go.uber.org/zap"
)

type Job func(ctx context.Context) error

// Runner запускает задачи по тикеру до отмены ctx.
type Runner struct {
	ctx context.Context
	log *zap.Logger
	wg  sync.WaitGroup
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctx: ctx, log: log}
}

// Every запускает fn каждые interval; при immediate — ещё и сразу.
func (r *Runner) Every(interval time.Duration, name string, immediate bool, fn Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if immediate {
			r.run(name, fn)
		}
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			observe(name, "panic", start)
			r.log.Error("job panic", zap.String("job", name), zap.Any("panic", rec))
			observability.CaptureJobErr(fmt.Errorf("job %s panic: %v", name, rec), name)
		}
	}()
	if err := fn(r.ctx); err != nil {
		observe(name, "error", start)
		r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
		observability.CaptureJobErr(err, name)
		return
	}
	observe(name, "ok", start)
}

// Wait ждёт завершения всех циклов после отмены ctx.
func (r *Runner) Wait() { r.wg.Wait() }
