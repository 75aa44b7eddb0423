package targets

import (
	"context"
	"errors"
	"fmt"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/shopspring/decimal"
)

type Service struct {
	store  store.Store
	access *access.Service
}

func NewService(store store.Store, access *access.Service) *Service {
	return &Service{store: store, access: access}
}

type UpsertParams struct {
	IndicatorID int64
	PeriodID    int64
	ProgramID   *int64
	Amount      decimal.Decimal
	Comment     *string
	UserID      int64
}

// Upsert writes a goal value under the same key normalization as the ledger,
// last-write-wins on amount and comment.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (*domain.UpsertResult, error) {
	indicator, programID, err := values.ResolveProgramDimension(ctx, s.store, params.IndicatorID, params.ProgramID)
	if err != nil {
		return nil, err
	}

	if _, err = s.store.GetPeriod(ctx, params.PeriodID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("get period: %w", err)
	}

	allowed, err := s.access.CanAccess(ctx, params.UserID, indicator.AreaID, programID, constants.ActionWrite)
	if err != nil {
		return nil, fmt.Errorf("access check: %w", err)
	}
	if !allowed {
		return nil, constants.ErrPermissionDenied
	}

	target := &domain.Target{
		IndicatorID: params.IndicatorID,
		PeriodID:    params.PeriodID,
		ProgramID:   programID,
		ProgramKey:  domain.ProgramKey(programID),
		Amount:      params.Amount,
		Comment:     params.Comment,
	}

	result, err := s.store.UpsertTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("upsert target: %w", err)
	}

	return result, nil
}

// Get reads the target for one key, normalizing the program reference the
// same way writes do. Reads are authorized against the indicator's area, like
// the value ledger.
func (s *Service) Get(ctx context.Context, userID, indicatorID, periodID int64, programID *int64) (*domain.Target, error) {
	indicator, err := s.store.GetIndicator(ctx, indicatorID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrIndicatorNotFound
		}
		return nil, fmt.Errorf("get indicator: %w", err)
	}

	allowed, err := s.access.CanAccess(ctx, userID, indicator.AreaID, programID, constants.ActionRead)
	if err != nil {
		return nil, fmt.Errorf("access check: %w", err)
	}
	if !allowed {
		return nil, constants.ErrPermissionDenied
	}

	target, err := s.store.GetTargetByKey(ctx, indicatorID, periodID, domain.ProgramKey(programID))
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrTargetNotFound
		}
		return nil, fmt.Errorf("get target: %w", err)
	}
	return target, nil
}
