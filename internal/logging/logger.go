// Package logging — zap-логгер сервиса с уровнем, который меняется через /debug/loglevel.
package logging

import (
	"context"
	"strings"

	"github.com/Spok95/studysync/internal/ctxutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	Base   *zap.Logger
	Sugar  *zap.SugaredLogger
	Level  zap.AtomicLevel
	Closer func()
}

// parseLevel — неизвестный уровень становится info.
func parseLevel(level string) zap.AtomicLevel {
	lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
	_ = lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level))))
	return lvl
}

// newConfig: в prod JSON, иначе консоль с цветными уровнями.
func newConfig(env string, lvl zap.AtomicLevel) zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if strings.EqualFold(env, "prod") {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = lvl
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func Init(service, level, env string) (*Log, error) {
	lvl := parseLevel(level)
	base, err := newConfig(env, lvl).Build(
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("service", service)),
	)
	if err != nil {
		return nil, err
	}
	return &Log{
		Base:   base,
		Sugar:  base.Sugar(),
		Level:  lvl,
		Closer: func() { _ = base.Sync() },
	}, nil
}

// FromContext добавляет к логгеру request id и имя операции из контекста.
func FromContext(ctx context.Context, l *zap.Logger) *zap.Logger {
	var fields []zap.Field
	if id, ok := ctxutil.RequestID(ctx); ok {
		fields = append(fields, zap.String("request_id", id))
	}
	if op, ok := ctxutil.Op(ctx); ok {
		fields = append(fields, zap.String("op", op))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
