//go:build testutil
// +build testutil

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/studysync/internal/db"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// DBHandle — временный Postgres с накатанными миграциями.
type DBHandle struct {
	DB     *sql.DB
	cancel func()
	stop   func(context.Context) error
}

// Truncate очищает таблицы записей между подтестами.
func (h *DBHandle) Truncate(ctx context.Context) error {
	_, err := h.DB.ExecContext(ctx, `TRUNCATE students, courses, assignments RESTART IDENTITY`)
	return err
}

func (h *DBHandle) Close() {
	if h.DB != nil {
		_ = h.DB.Close()
	}
	if h.stop != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.stop(ctx)
	}
	if h.cancel != nil {
		h.cancel()
	}
}

// Start поднимает контейнер Postgres и открывает к нему пул через db.Open.
func Start(ctx context.Context) (*DBHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("studysync"),
		postgres.WithUsername("studysync"),
		postgres.WithPassword("studysync"),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("container: %w", err)
	}
	h := &DBHandle{cancel: cancel, stop: pg.Terminate}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("dsn: %w", err)
	}
	if h.DB, err = connect(ctx, dsn); err != nil {
		h.Close()
		return nil, err
	}
	if err := db.Migrate(ctx, h.DB); err != nil {
		h.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return h, nil
}

// connect повторяет db.Open, пока контейнер не начнёт принимать соединения.
func connect(ctx context.Context, dsn string) (*sql.DB, error) {
	dead := time.Now().Add(20 * time.Second)
	for {
		database, err := db.Open(ctx, dsn)
		if err == nil {
			return database, nil
		}
		if time.Now().After(dead) {
			return nil, errors.Join(errors.New("db not ready"), err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}
