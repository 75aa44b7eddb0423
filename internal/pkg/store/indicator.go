package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
)

var indicatorColumns = []string{
	"id", "area_id", "sub_unit_id", "category_id", "code", "name", "description",
	"formula", "unit_id", "frequency_id", "source_id", "requires_program_breakdown",
	"active", "created_at", "updated_at",
}

func (s *store) CreateIndicator(ctx context.Context, indicator *domain.Indicator) error {
	query := builder().Insert(tableIndicators).
		Columns("area_id", "sub_unit_id", "category_id", "code", "name", "description",
			"formula", "unit_id", "frequency_id", "source_id", "requires_program_breakdown", "active").
		Values(indicator.AreaID, indicator.SubUnitID, indicator.CategoryID, indicator.Code,
			indicator.Name, indicator.Description, indicator.Formula, indicator.UnitID,
			indicator.FrequencyID, indicator.SourceID, indicator.RequiresProgramBreakdown, indicator.Active).
		Suffix("RETURNING " + strings.Join(indicatorColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, indicator, query); err != nil {
		return fmt.Errorf("insert indicator: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetIndicator(ctx context.Context, id int64) (*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		Where(sq.Eq{"id": id})

	var selected domain.Indicator
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetIndicatorByCode(ctx context.Context, code string) (*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		Where(sq.Eq{"code": code})

	var selected domain.Indicator
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListIndicatorsByArea(ctx context.Context, areaID int64) ([]*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		Where(sq.Eq{"area_id": areaID}).
		OrderBy("code")

	var selected []*domain.Indicator
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
