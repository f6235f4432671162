package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/studysync/internal/config"
	"github.com/Spok95/studysync/internal/db"
	"github.com/Spok95/studysync/internal/recordsvc"
	"go.uber.org/zap"
)

// Backend — выбранная реализация хранилища записей.
type Backend struct {
	Client *recordsvc.Instrumented
	Close  func()
}

func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	var (
		client recordsvc.Client
		closer = func() {}
	)
	switch cfg.Backend {
	case config.BackendPostgres:
		database, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := db.Migrate(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		client = db.NewRecordStore(database)
		closer = func() { _ = database.Close() }
	case config.BackendHTTP:
		client = recordsvc.NewHTTPClient(cfg.RecordServiceURL, cfg.RecordProjectID, cfg.RecordPublicKey, cfg.RecordTimeout)
	case config.BackendMemory:
		client = recordsvc.NewMemory()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	log.Info("record backend ready", zap.String("backend", string(cfg.Backend)))

	b := &Backend{Client: recordsvc.Instrument(client), Close: closer}
	if cfg.SeedDemo {
		sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		seeded, err := db.SeedDemo(sctx, b.Client, time.Now().In(cfg.Location))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		log.Info("demo data", zap.Bool("seeded", seeded))
	}
	return b, nil
}
