package xpgx

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Getx runs the query and scans the single result row into dest by db tags.
// The lax mapping allows dest to carry fields the query does not return; those
// come back zero, so inserts return the full row. Returns pgx.ErrNoRows when
// nothing matched.
func Getx[T any](ctx context.Context, p Pool, dest *T, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := p.Query(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return err
	}

	*dest = row
	return nil
}

// Selectx runs the query and collects every row into dest.
func Selectx[T any](ctx context.Context, p Pool, dest *[]*T, query sq.Sqlizer) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	rows, err := p.Query(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return err
	}

	*dest = collected
	return nil
}
