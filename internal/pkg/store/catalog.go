package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
)

var (
	areaColumns    = []string{"id", "name", "description", "created_at", "updated_at"}
	programColumns = []string{"id", "area_id", "name", "description", "created_at", "updated_at"}
	periodColumns  = []string{"id", "label", "year", "month", "quarter", "semester", "frequency_id", "starts_on", "ends_on"}
)

func (s *store) CreateArea(ctx context.Context, area *domain.Area) error {
	query := builder().Insert(tableAreas).
		Columns("name", "description").
		Values(area.Name, area.Description).
		Suffix("RETURNING " + strings.Join(areaColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, area, query); err != nil {
		return fmt.Errorf("insert area: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetArea(ctx context.Context, id int64) (*domain.Area, error) {
	query := builder().Select(areaColumns...).
		From(tableAreas).
		Where(sq.Eq{"id": id})

	var selected domain.Area
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	query := builder().Select(areaColumns...).
		From(tableAreas).
		OrderBy("name")

	var selected []*domain.Area
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CreateProgram(ctx context.Context, program *domain.Program) error {
	query := builder().Insert(tablePrograms).
		Columns("area_id", "name", "description").
		Values(program.AreaID, program.Name, program.Description).
		Suffix("RETURNING " + strings.Join(programColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, program, query); err != nil {
		return fmt.Errorf("insert program: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetProgram(ctx context.Context, id int64) (*domain.Program, error) {
	query := builder().Select(programColumns...).
		From(tablePrograms).
		Where(sq.Eq{"id": id})

	var selected domain.Program
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListProgramsByArea(ctx context.Context, areaID int64) ([]*domain.Program, error) {
	query := builder().Select(programColumns...).
		From(tablePrograms).
		Where(sq.Eq{"area_id": areaID}).
		OrderBy("name")

	var selected []*domain.Program
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CreatePeriod(ctx context.Context, period *domain.Period) error {
	query := builder().Insert(tablePeriods).
		Columns("label", "year", "month", "quarter", "semester", "frequency_id", "starts_on", "ends_on").
		Values(period.Label, period.Year, period.Month, period.Quarter, period.Semester,
			period.FrequencyID, period.StartsOn, period.EndsOn).
		Suffix("RETURNING " + strings.Join(periodColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, period, query); err != nil {
		return fmt.Errorf("insert period: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetPeriod(ctx context.Context, id int64) (*domain.Period, error) {
	query := builder().Select(periodColumns...).
		From(tablePeriods).
		Where(sq.Eq{"id": id})

	var selected domain.Period
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetPeriodByLabel(ctx context.Context, label string) (*domain.Period, error) {
	query := builder().Select(periodColumns...).
		From(tablePeriods).
		Where(sq.Eq{"label": label})

	var selected domain.Period
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListPeriods(ctx context.Context) ([]*domain.Period, error) {
	query := builder().Select(periodColumns...).
		From(tablePeriods).
		OrderBy("year, month, quarter, semester")

	var selected []*domain.Period
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	var selected []*domain.Unit
	if err := xpgx.Selectx(ctx, s.pool, &selected, builder().Select("id", "name").From(tableUnits).OrderBy("name")); err != nil {
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) ListFrequencies(ctx context.Context) ([]*domain.Frequency, error) {
	var selected []*domain.Frequency
	if err := xpgx.Selectx(ctx, s.pool, &selected, builder().Select("id", "name").From(tableFrequencies).OrderBy("id")); err != nil {
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var selected []*domain.Category
	if err := xpgx.Selectx(ctx, s.pool, &selected, builder().Select("id", "name").From(tableCategories).OrderBy("name")); err != nil {
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) ListSources(ctx context.Context) ([]*domain.Source, error) {
	var selected []*domain.Source
	if err := xpgx.Selectx(ctx, s.pool, &selected, builder().Select("id", "name").From(tableSources).OrderBy("name")); err != nil {
		return nil, wrapErr(err)
	}
	return selected, nil
}
