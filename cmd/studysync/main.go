package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spok95/studysync/internal/app"
	"github.com/Spok95/studysync/internal/config"
	"github.com/Spok95/studysync/internal/logging"
	"github.com/Spok95/studysync/internal/observability"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init("studysync", cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		lg.Sugar.Warnw("sentry disabled", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Base.Info("starting",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("backend", string(cfg.Backend)),
	)
	if err := app.Run(ctx, cfg, lg); err != nil {
		lg.Base.Error("stopped with error", zap.Error(err))
		observability.CaptureErr(err)
		flush()
		lg.Closer()
		os.Exit(1)
	}
	lg.Base.Info("stopped")
}
