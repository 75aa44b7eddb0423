package xpgx

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps pgxpool with helpers that execute squirrel builders directly and
// scan rows into structs by their db tags.
type Pool struct {
	*pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return Pool{}, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return Pool{}, fmt.Errorf("ping: %w", err)
	}

	return Pool{pool}, nil
}

// Execx executes the built query.
func (p Pool) Execx(ctx context.Context, query sq.Sqlizer) (pgconn.CommandTag, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build query: %w", err)
	}

	return p.Exec(ctx, sqlStr, args...)
}

// IsUniqueViolation reports whether err is a postgres unique-constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
