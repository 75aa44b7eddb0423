package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
)

// Service fronts the reference entities: pure lookups plus the creation calls
// provisioning uses. Catalog edit screens are out of scope, so there is no
// update or delete surface.
type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateArea(ctx context.Context, req *domain.CreateAreaRequest) (*domain.Area, error) {
	area := &domain.Area{Name: req.Name, Description: req.Description}
	if err := s.store.CreateArea(ctx, area); err != nil {
		return nil, fmt.Errorf("create area: %w", err)
	}
	return area, nil
}

func (s *Service) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	return s.store.ListAreas(ctx)
}

func (s *Service) CreateProgram(ctx context.Context, req *domain.CreateProgramRequest) (*domain.Program, error) {
	program := &domain.Program{AreaID: req.AreaID, Name: req.Name, Description: req.Description}
	if err := s.store.CreateProgram(ctx, program); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return program, nil
}

func (s *Service) ListProgramsByArea(ctx context.Context, areaID int64) ([]*domain.Program, error) {
	return s.store.ListProgramsByArea(ctx, areaID)
}

// CreatePeriod range-checks the nullable shape discriminators; the shapes
// themselves (monthly, quarterly, semestral, annual) coexist freely.
func (s *Service) CreatePeriod(ctx context.Context, req *domain.CreatePeriodRequest) (*domain.Period, error) {
	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		return nil, constants.ErrInvalidPeriodShape
	}
	if req.Quarter != nil && (*req.Quarter < 1 || *req.Quarter > 4) {
		return nil, constants.ErrInvalidPeriodShape
	}
	if req.Semester != nil && (*req.Semester < 1 || *req.Semester > 2) {
		return nil, constants.ErrInvalidPeriodShape
	}

	period := &domain.Period{
		Label:       req.Label,
		Year:        req.Year,
		Month:       req.Month,
		Quarter:     req.Quarter,
		Semester:    req.Semester,
		FrequencyID: req.FrequencyID,
	}
	if err := s.store.CreatePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("create period: %w", err)
	}
	return period, nil
}

func (s *Service) GetPeriodByLabel(ctx context.Context, label string) (*domain.Period, error) {
	period, err := s.store.GetPeriodByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("get period by label: %w", err)
	}
	return period, nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]*domain.Period, error) {
	return s.store.ListPeriods(ctx)
}

func (s *Service) CreateIndicator(ctx context.Context, req *domain.CreateIndicatorRequest) (*domain.Indicator, error) {
	indicator := &domain.Indicator{
		AreaID:                   req.AreaID,
		SubUnitID:                req.SubUnitID,
		CategoryID:               req.CategoryID,
		Code:                     req.Code,
		Name:                     req.Name,
		Description:              req.Description,
		Formula:                  req.Formula,
		UnitID:                   req.UnitID,
		FrequencyID:              req.FrequencyID,
		SourceID:                 req.SourceID,
		RequiresProgramBreakdown: req.RequiresProgramBreakdown,
		Active:                   true,
	}
	if err := s.store.CreateIndicator(ctx, indicator); err != nil {
		return nil, fmt.Errorf("create indicator: %w", err)
	}
	return indicator, nil
}

func (s *Service) GetIndicatorByCode(ctx context.Context, code string) (*domain.Indicator, error) {
	indicator, err := s.store.GetIndicatorByCode(ctx, code)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrIndicatorNotFound
		}
		return nil, fmt.Errorf("get indicator by code: %w", err)
	}
	return indicator, nil
}

func (s *Service) ListIndicatorsByArea(ctx context.Context, areaID int64) ([]*domain.Indicator, error) {
	return s.store.ListIndicatorsByArea(ctx, areaID)
}

func (s *Service) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	return s.store.ListUnits(ctx)
}

func (s *Service) ListFrequencies(ctx context.Context) ([]*domain.Frequency, error) {
	return s.store.ListFrequencies(ctx)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) ListSources(ctx context.Context) ([]*domain.Source, error) {
	return s.store.ListSources(ctx)
}
