// Package app собирает сервис: хранилище записей, HTTP API и фоновые задачи.
package app

import (
	"context"
	"time"

	"github.com/Spok95/studysync/internal/config"
	"github.com/Spok95/studysync/internal/ctxutil"
	"github.com/Spok95/studysync/internal/jobs"
	"github.com/Spok95/studysync/internal/logging"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/Spok95/studysync/internal/repo"
	"github.com/Spok95/studysync/internal/tg"
	"github.com/Spok95/studysync/internal/web"
	"go.uber.org/zap"
)

const (
	digestMaxItems = 10
	gaugeInterval  = time.Minute
)

// Run работает до отмены ctx.
func Run(ctx context.Context, cfg *config.Config, l *logging.Log) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := l.Base
	ctxutil.DefaultRecordTimeout = cfg.RecordTimeout

	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	repos := repo.New(backend.Client, log)

	opts := &web.Options{
		Repos:       repos,
		Pinger:      backend.Client,
		Logger:      log,
		Location:    cfg.Location,
		DueSoonDays: cfg.DueSoonDays,
		Debug:       cfg.Env != "prod",
		LogLevel:    l.Level,
	}
	if cfg.ServeRecords {
		opts.Records = recordsvc.NewHandler(backend.Client, cfg.RecordProjectID, cfg.RecordPublicKey)
	}
	srv := StartHTTP(ctx, cfg.HTTPAddr, web.NewServer(opts), cfg.CORSOrigins, log)

	runner := jobs.New(ctx, log)
	digest := &jobs.Digest{
		Assignments: repos.Assignments,
		Courses:     repos.Courses,
		SoonDays:    cfg.DueSoonDays,
		Location:    cfg.Location,
		MaxItems:    digestMaxItems,
	}
	if cfg.DigestEnabled() {
		notifier, err := tg.NewNotifier(cfg.BotToken, cfg.NotifyChatIDs, log)
		if err != nil {
			log.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			digest.Notifier = notifier
			runner.Every(cfg.DigestInterval, "deadline_digest", false, digest.Run)
		}
	}
	// без рассылки задача только обновляет метрики сроков
	if digest.Notifier == nil {
		runner.Every(gaugeInterval, "deadline_gauges", true, digest.Run)
	}

	err = srv.Wait()
	cancel()
	runner.Wait()
	return err
}
