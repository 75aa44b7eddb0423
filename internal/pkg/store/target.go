package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
)

var targetColumns = []string{
	"id", "indicator_id", "period_id", "program_id", "program_key",
	"amount", "comment", "created_at", "updated_at",
}

func (s *store) UpsertTarget(ctx context.Context, target *domain.Target) (*domain.UpsertResult, error) {
	query := builder().Insert(tableTargets).
		Columns("indicator_id", "period_id", "program_id", "program_key", "amount", "comment").
		Values(target.IndicatorID, target.PeriodID, target.ProgramID, target.ProgramKey,
			target.Amount, target.Comment).
		Suffix(`on conflict (indicator_id, period_id, program_key)
do update set
	amount = excluded.amount,
	comment = excluded.comment,
	updated_at = now()
returning id, (xmax = 0) as inserted`)

	var row upsertRow
	if err := xpgx.Getx(ctx, s.pool, &row, query); err != nil {
		return nil, fmt.Errorf("upsert target: %w", wrapErr(err))
	}

	return &domain.UpsertResult{ID: row.ID, Inserted: row.Inserted}, nil
}

func (s *store) GetTargetByKey(ctx context.Context, indicatorID, periodID, programKey int64) (*domain.Target, error) {
	query := builder().Select(targetColumns...).
		From(tableTargets).
		Where(sq.And{
			sq.Eq{"indicator_id": indicatorID},
			sq.Eq{"period_id": periodID},
			sq.Eq{"program_key": programKey},
		})

	var selected domain.Target
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}
