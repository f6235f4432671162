package recordsvc

import (
	"context"
	"time"

	"github.com/Spok95/studysync/internal/ctxutil"
	"github.com/Spok95/studysync/internal/metrics"
)

// Instrumented оборачивает Client: таймаут на вызов и метрики.
type Instrumented struct {
	next Client
}

func Instrument(c Client) *Instrumented { return &Instrumented{next: c} }

func outcome(err error, success bool) string {
	switch {
	case err != nil:
		return "error"
	case !success:
		return "failed"
	}
	return "ok"
}

func (i *Instrumented) Ping(ctx context.Context) error {
	p, ok := i.next.(Pinger)
	if !ok {
		return nil
	}
	ctx, cancel := ctxutil.WithRecordTimeout(ctx)
	defer cancel()
	start := time.Now()
	err := p.Ping(ctx)
	metrics.ObserveBackendPing(time.Since(start))
	return err
}

func (i *Instrumented) List(ctx context.Context, c Collection, p ListParams) (*ListResponse, error) {
	ctx, cancel := ctxutil.WithRecordTimeout(ctx)
	defer cancel()
	start := time.Now()
	res, err := i.next.List(ctx, c, p)
	metrics.ObserveRecordOp(string(c), "list", outcome(err, res != nil && res.Success), time.Since(start))
	return res, err
}

func (i *Instrumented) GetByID(ctx context.Context, c Collection, id int64, fields []string) (*GetResponse, error) {
	ctx, cancel := ctxutil.WithRecordTimeout(ctx)
	defer cancel()
	start := time.Now()
	res, err := i.next.GetByID(ctx, c, id, fields)
	metrics.ObserveRecordOp(string(c), "get", outcome(err, res != nil && res.Success), time.Since(start))
	return res, err
}

func (i *Instrumented) batch(ctx context.Context, c Collection, op string, fn func(context.Context) (*BatchResponse, error)) (*BatchResponse, error) {
	ctx, cancel := ctxutil.WithRecordTimeout(ctx)
	defer cancel()
	start := time.Now()
	res, err := fn(ctx)
	metrics.ObserveRecordOp(string(c), op, outcome(err, res != nil && res.Success && len(res.Failed()) == 0), time.Since(start))
	return res, err
}

func (i *Instrumented) Create(ctx context.Context, c Collection, records []Record) (*BatchResponse, error) {
	return i.batch(ctx, c, "create", func(ctx context.Context) (*BatchResponse, error) {
		return i.next.Create(ctx, c, records)
	})
}

func (i *Instrumented) Update(ctx context.Context, c Collection, records []Record) (*BatchResponse, error) {
	return i.batch(ctx, c, "update", func(ctx context.Context) (*BatchResponse, error) {
		return i.next.Update(ctx, c, records)
	})
}

func (i *Instrumented) Delete(ctx context.Context, c Collection, ids []int64) (*BatchResponse, error) {
	return i.batch(ctx, c, "delete", func(ctx context.Context) (*BatchResponse, error) {
		return i.next.Delete(ctx, c, ids)
	})
}
