package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/logger"
	"github.com/duacyd/analitica/internal/pkg/metrics"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Service tracks ingestion batches and their per-row diagnostics. It never
// parses files; callers feed it already-extracted rows and counter deltas.
type Service struct {
	store  store.Store
	values *values.Service
}

func NewService(store store.Store, values *values.Service) *Service {
	return &Service{store: store, values: values}
}

func (s *Service) OpenBatch(ctx context.Context, areaID, userID int64, origin, description *string) (*domain.Batch, error) {
	if _, err := s.store.GetArea(ctx, areaID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrAreaNotFound
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	batch := &domain.Batch{
		ID:          uuid.New(),
		AreaID:      areaID,
		UserID:      userID,
		Origin:      origin,
		Description: description,
	}
	if err := s.store.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	logger.Infof(ctx, "batch opened: id=%s area_id=%d user_id=%d", batch.ID, areaID, userID)
	return batch, nil
}

func (s *Service) RecordFile(ctx context.Context, batchID uuid.UUID, filename, fileType string, path *string) (*domain.BatchFile, error) {
	file := &domain.BatchFile{
		BatchID:  batchID,
		Filename: filename,
		FileType: fileType,
		Path:     path,
	}
	if err := s.store.CreateBatchFile(ctx, file); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrBatchNotFound
		}
		return nil, fmt.Errorf("create batch file: %w", err)
	}

	return file, nil
}

// RecordRowError appends one diagnostic record. Row failures are independent
// of each other and of rows already committed in the same file.
func (s *Service) RecordRowError(ctx context.Context, fileID int64, rowNumber int, message string, payload *string) error {
	rowError := &domain.RowError{
		FileID:    fileID,
		RowNumber: rowNumber,
		Message:   message,
		Payload:   payload,
	}
	if err := s.store.CreateRowError(ctx, rowError); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return constants.ErrFileNotFound
		}
		return fmt.Errorf("create row error: %w", err)
	}

	return nil
}

func (s *Service) BumpFileCounters(ctx context.Context, fileID int64, okDelta, errDelta int) error {
	if err := s.store.BumpFileCounters(ctx, fileID, okDelta, errDelta); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return constants.ErrFileNotFound
		}
		return fmt.Errorf("bump file counters: %w", err)
	}
	return nil
}

func (s *Service) RowErrors(ctx context.Context, fileID int64) ([]*domain.RowError, error) {
	if _, err := s.store.GetBatchFile(ctx, fileID); err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrFileNotFound
		}
		return nil, fmt.Errorf("get batch file: %w", err)
	}
	return s.store.ListRowErrors(ctx, fileID)
}

// LoadValues upserts a slice of extracted rows against the ledger on behalf of
// the batch. Distinct keys proceed in parallel; a failing row lands in the
// report and does not disturb rows that already committed. Partial success is
// the expected steady state, not an error.
func (s *Service) LoadValues(ctx context.Context, batchID uuid.UUID, userID int64, rows []domain.LoadValueRow) (*domain.LoadReport, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	parallelism := viper.GetInt(constants.ViperLoadValuesPara)
	if parallelism <= 0 {
		parallelism = 4
	}

	report := &domain.LoadReport{}
	var reportMx sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)

	for _, row := range rows {
		row := row
		eg.Go(func() error {
			result, err := s.values.Upsert(egCtx, values.UpsertParams{
				IndicatorID: row.IndicatorID,
				PeriodID:    row.PeriodID,
				ProgramID:   row.ProgramID,
				Amount:      row.Amount,
				Note:        row.Note,
				BatchID:     &batch.ID,
				UserID:      userID,
			})

			reportMx.Lock()
			defer reportMx.Unlock()

			if err != nil {
				metrics.ObserveIngestedRow(false)
				report.Failed = append(report.Failed, domain.LoadRowError{
					RowNumber: row.RowNumber,
					Message:   err.Error(),
				})
				return nil
			}

			metrics.ObserveIngestedRow(true)
			if result.Inserted {
				report.Inserted++
			} else {
				report.Updated++
			}
			return nil
		})
	}

	// row errors are data, not failures; Wait only surfaces ctx cancellation
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "batch %s: loaded %d inserted, %d updated, %d failed",
		batchID, report.Inserted, report.Updated, len(report.Failed))

	return report, nil
}
