package logging

import (
	"context"
	"testing"

	"github.com/Spok95/studysync/internal/ctxutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLevels(t *testing.T) {
	l, err := Init("studysync", "debug", "prod")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Closer()
	if l.Level.Level() != zap.DebugLevel {
		t.Fatalf("ожидали debug, получили %s", l.Level.Level())
	}

	l2, err := Init("studysync", "nonsense", "dev")
	if err != nil {
		t.Fatal(err)
	}
	if l2.Level.Level() != zap.InfoLevel {
		t.Fatalf("неизвестный уровень должен стать info, получили %s", l2.Level.Level())
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxutil.WithOp(ctxutil.WithRequestID(context.Background(), "r-1"), "grades.view")
	FromContext(ctx, zap.New(core)).Info("hello")

	entry := logs.All()[0]
	fields := entry.ContextMap()
	if fields["request_id"] != "r-1" || fields["op"] != "grades.view" {
		t.Fatalf("поля контекста не попали в лог: %v", fields)
	}
}
