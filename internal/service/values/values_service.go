package values

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/logger"
	"github.com/duacyd/analitica/internal/pkg/metrics"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/google/uuid"
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
	Note        *string
	BatchID     *uuid.UUID
	UserID      int64
}

// ResolveProgramDimension validates the optional program dimension of a write
// against the indicator registry and returns the normalized program reference:
//
//   - breakdown required and no program given: ErrProgramRequired;
//   - breakdown not required: a supplied program is silently dropped, by
//     contract, so the key collapses onto the no-program sentinel;
//   - a surviving program must exist and belong to the indicator's area.
//
// Targets and values share this so the two tables cannot disagree on key shape.
func ResolveProgramDimension(ctx context.Context, st store.Store, indicatorID int64, programID *int64) (*domain.Indicator, *int64, error) {
	indicator, err := st.GetIndicator(ctx, indicatorID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, nil, constants.ErrIndicatorNotFound
		}
		return nil, nil, fmt.Errorf("get indicator: %w", err)
	}

	if indicator.RequiresProgramBreakdown {
		if programID == nil {
			return nil, nil, constants.ErrProgramRequired
		}
	} else {
		programID = nil
	}

	if programID != nil {
		program, err := st.GetProgram(ctx, *programID)
		if err != nil {
			if errors.Is(err, constants.ErrDBNotFound) {
				return nil, nil, constants.ErrProgramNotFound
			}
			return nil, nil, fmt.Errorf("get program: %w", err)
		}
		if program.AreaID != indicator.AreaID {
			return nil, nil, constants.ErrProgramAreaMismatch
		}
	}

	return indicator, programID, nil
}

// Upsert is the single write path of the value ledger. Validation happens
// before any mutation; the write itself is one atomic statement keyed on
// (indicator, period, program), so retrying with identical arguments is safe
// and concurrent same-key writers serialize into last-write-wins.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (*domain.UpsertResult, error) {
	indicator, programID, err := ResolveProgramDimension(ctx, s.store, params.IndicatorID, params.ProgramID)
	if err != nil {
		if errors.Is(err, constants.ErrProgramRequired) || errors.Is(err, constants.ErrProgramAreaMismatch) {
			metrics.ObserveIntegrityViolation()
		}
		return nil, err
	}

	if _, err = s.store.GetPeriod(ctx, params.PeriodID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrPeriodNotFound
		}
		return nil, fmt.Errorf("get period: %w", err)
	}

	if _, err = s.store.GetUser(ctx, params.UserID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	allowed, err := s.access.CanAccess(ctx, params.UserID, indicator.AreaID, programID, constants.ActionWrite)
	if err != nil {
		return nil, fmt.Errorf("access check: %w", err)
	}
	if !allowed {
		return nil, constants.ErrPermissionDenied
	}

	value := &domain.Value{
		IndicatorID: params.IndicatorID,
		PeriodID:    params.PeriodID,
		AreaID:      indicator.AreaID,
		ProgramID:   programID,
		ProgramKey:  domain.ProgramKey(programID),
		Amount:      params.Amount,
		Note:        params.Note,
		BatchID:     params.BatchID,
		UserID:      params.UserID,
	}

	result, err := s.upsertWithRetry(ctx, value)
	if err != nil {
		return nil, err
	}

	metrics.ObserveUpsert(result.Inserted)
	logger.Debugf(ctx, "value upserted: indicator_id=%d period_id=%d program_key=%d inserted=%t",
		value.IndicatorID, value.PeriodID, value.ProgramKey, result.Inserted)

	return result, nil
}

// upsertWithRetry converts a uniqueness race on insert into a bounded retry;
// the conflict never reaches callers.
func (s *Service) upsertWithRetry(ctx context.Context, value *domain.Value) (*domain.UpsertResult, error) {
	var result *domain.UpsertResult

	operation := func() error {
		res, err := s.store.UpsertValue(ctx, value)
		if err != nil {
			if errors.Is(err, constants.ErrUniquenessConflict) {
				metrics.ObserveUniquenessRetry()
				logger.Warnf(ctx, "uniqueness race on value key (%d,%d,%d), retrying as update",
					value.IndicatorID, value.PeriodID, value.ProgramKey)
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)); err != nil {
		return nil, fmt.Errorf("upsert value: %w", err)
	}

	return result, nil
}

// List returns ledger rows the user may read. The area to authorize against
// comes from the filter, or from the filtered indicator when only that is set.
func (s *Service) List(ctx context.Context, userID int64, opts store.ListValuesOpts) ([]*domain.Value, error) {
	areaID := opts.AreaID
	if areaID == nil && opts.IndicatorID != nil {
		indicator, err := s.store.GetIndicator(ctx, *opts.IndicatorID)
		if err != nil {
			if errors.Is(err, constants.ErrDBNotFound) {
				return nil, constants.ErrIndicatorNotFound
			}
			return nil, fmt.Errorf("get indicator: %w", err)
		}
		areaID = &indicator.AreaID
	}
	if areaID == nil {
		return nil, constants.ErrPermissionDenied
	}

	allowed, err := s.access.CanAccess(ctx, userID, *areaID, opts.ProgramID, constants.ActionRead)
	if err != nil {
		return nil, fmt.Errorf("access check: %w", err)
	}
	if !allowed {
		return nil, constants.ErrPermissionDenied
	}

	return s.store.ListValues(ctx, opts)
}
