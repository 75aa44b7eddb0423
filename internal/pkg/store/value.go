package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
)

var valueColumns = []string{
	"id", "indicator_id", "period_id", "area_id", "program_id", "program_key",
	"amount", "note", "batch_id", "user_id", "created_at", "updated_at",
}

// upsertRow carries the RETURNING columns of an upsert statement. xmax is zero
// only for freshly inserted tuples, which tells inserts and updates apart.
type upsertRow struct {
	ID       int64 `db:"id"`
	Inserted bool  `db:"inserted"`
}

// UpsertValue writes one ledger row as a single atomic statement. The unique
// index on (indicator_id, period_id, program_key) closes the concurrent
// insert race: whichever statement commits last wins the amount and
// provenance fields, and duplicate rows cannot appear.
func (s *store) UpsertValue(ctx context.Context, value *domain.Value) (*domain.UpsertResult, error) {
	query := builder().Insert(tableValues).
		Columns("indicator_id", "period_id", "area_id", "program_id", "program_key",
			"amount", "note", "batch_id", "user_id").
		Values(value.IndicatorID, value.PeriodID, value.AreaID, value.ProgramID, value.ProgramKey,
			value.Amount, value.Note, value.BatchID, value.UserID).
		Suffix(`on conflict (indicator_id, period_id, program_key)
do update set
	amount = excluded.amount,
	note = excluded.note,
	batch_id = excluded.batch_id,
	user_id = excluded.user_id,
	updated_at = now()
returning id, (xmax = 0) as inserted`)

	var row upsertRow
	if err := xpgx.Getx(ctx, s.pool, &row, query); err != nil {
		return nil, fmt.Errorf("upsert value: %w", wrapErr(err))
	}

	return &domain.UpsertResult{ID: row.ID, Inserted: row.Inserted}, nil
}

func (s *store) GetValueByKey(ctx context.Context, indicatorID, periodID, programKey int64) (*domain.Value, error) {
	query := builder().Select(valueColumns...).
		From(tableValues).
		Where(sq.And{
			sq.Eq{"indicator_id": indicatorID},
			sq.Eq{"period_id": periodID},
			sq.Eq{"program_key": programKey},
		})

	var selected domain.Value
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListValues(ctx context.Context, opts ListValuesOpts) ([]*domain.Value, error) {
	query := builder().Select(valueColumns...).
		From(tableValues).
		OrderBy("indicator_id, period_id, program_key")

	if opts.IndicatorID != nil {
		query = query.Where(sq.Eq{"indicator_id": *opts.IndicatorID})
	}
	if opts.PeriodID != nil {
		query = query.Where(sq.Eq{"period_id": *opts.PeriodID})
	}
	if opts.AreaID != nil {
		query = query.Where(sq.Eq{"area_id": *opts.AreaID})
	}
	if opts.ProgramID != nil {
		query = query.Where(sq.Eq{"program_key": domain.ProgramKey(opts.ProgramID)})
	}

	var selected []*domain.Value
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
