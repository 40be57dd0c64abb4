package queue

import (
	"context"
	"fmt"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog/log"
)

// Pool is the subset of pgxpool.Pool the job store needs.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxPoolWrapper wraps a pgx Pool in a generic interface to allow for alternative implementations, such as the FakePgxPoolWrapper
type PgxPoolWrapper struct {
	pool *pgxpool.Pool
}

func NewPgxPoolWrapper(pool *pgxpool.Pool) *PgxPoolWrapper {
	return &PgxPoolWrapper{pool: pool}
}

func (p *PgxPoolWrapper) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.pool.Begin(ctx)
}

func (p *PgxPoolWrapper) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, arguments...)
}

func (p *PgxPoolWrapper) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p *PgxPoolWrapper) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p *PgxPoolWrapper) Close() {
	p.pool.Close()
}

// FakePgxPoolWrapper runs every statement inside one outer transaction so
// tests can roll all of their work back. Begin opens a savepoint.
type FakePgxPoolWrapper struct {
	tx pgx.Tx
}

func NewFakePgxPoolWrapper(tx pgx.Tx) *FakePgxPoolWrapper {
	return &FakePgxPoolWrapper{tx: tx}
}

func (p *FakePgxPoolWrapper) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.tx.Begin(ctx)
}

func (p *FakePgxPoolWrapper) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return p.tx.Exec(ctx, sql, arguments...)
}

func (p *FakePgxPoolWrapper) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.tx.Query(ctx, sql, args...)
}

func (p *FakePgxPoolWrapper) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.tx.QueryRow(ctx, sql, args...)
}

// NewPgxPool opens a pgx pool, tracing statements through zerolog when
// database.pgx_logging is enabled.
func NewPgxPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pxConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	if config.Get().Database.PgxLogging {
		level, err := tracelog.LogLevelFromString(config.Get().Logging.Level)
		if err != nil {
			log.Error().Err(err).Msg("Error setting Pgx log level")
			level = tracelog.LogLevelInfo
		}
		pxConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(log.Logger),
			LogLevel: level,
		}
	}
	if limit := config.Get().Database.PoolLimit; limit > 0 {
		pxConfig.MaxConns = int32(limit) //nolint:gosec
	}
	pool, err := pgxpool.NewWithConfig(ctx, pxConfig)
	if err != nil {
		return nil, fmt.Errorf("error establishing connection: %w", err)
	}
	return pool, nil
}
