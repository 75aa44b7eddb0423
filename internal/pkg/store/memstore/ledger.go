package memstore

import (
	"context"
	"time"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/google/uuid"
)

// UpsertValue performs the read-check-write under the store mutex, so the
// one-row-per-key invariant holds for concurrent same-key writers exactly as
// the postgres unique index guarantees it.
func (s *Store) UpsertValue(_ context.Context, value *domain.Value) (*domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := valueKey{IndicatorID: value.IndicatorID, PeriodID: value.PeriodID, ProgramKey: value.ProgramKey}
	now := time.Now()

	if existing, ok := s.values[key]; ok {
		existing.Amount = value.Amount
		existing.Note = value.Note
		existing.BatchID = value.BatchID
		existing.UserID = value.UserID
		existing.UpdatedAt = now
		s.values[key] = existing
		return &domain.UpsertResult{ID: existing.ID, Inserted: false}, nil
	}

	stored := *value
	stored.ID = s.nextID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.values[key] = stored
	return &domain.UpsertResult{ID: stored.ID, Inserted: true}, nil
}

func (s *Store) GetValueByKey(_ context.Context, indicatorID, periodID, programKey int64) (*domain.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[valueKey{IndicatorID: indicatorID, PeriodID: periodID, ProgramKey: programKey}]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &value, nil
}

func (s *Store) ListValues(_ context.Context, opts store.ListValuesOpts) ([]*domain.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Value
	for key := range s.values {
		value := s.values[key]
		if opts.IndicatorID != nil && value.IndicatorID != *opts.IndicatorID {
			continue
		}
		if opts.PeriodID != nil && value.PeriodID != *opts.PeriodID {
			continue
		}
		if opts.AreaID != nil && value.AreaID != *opts.AreaID {
			continue
		}
		if opts.ProgramID != nil && value.ProgramKey != domain.ProgramKey(opts.ProgramID) {
			continue
		}
		out = append(out, &value)
	}
	return out, nil
}

func (s *Store) UpsertTarget(_ context.Context, target *domain.Target) (*domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := valueKey{IndicatorID: target.IndicatorID, PeriodID: target.PeriodID, ProgramKey: target.ProgramKey}
	now := time.Now()

	if existing, ok := s.targets[key]; ok {
		existing.Amount = target.Amount
		existing.Comment = target.Comment
		existing.UpdatedAt = now
		s.targets[key] = existing
		return &domain.UpsertResult{ID: existing.ID, Inserted: false}, nil
	}

	stored := *target
	stored.ID = s.nextID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.targets[key] = stored
	return &domain.UpsertResult{ID: stored.ID, Inserted: true}, nil
}

func (s *Store) GetTargetByKey(_ context.Context, indicatorID, periodID, programKey int64) (*domain.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.targets[valueKey{IndicatorID: indicatorID, PeriodID: periodID, ProgramKey: programKey}]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &target, nil
}

func (s *Store) CreateBatch(_ context.Context, batch *domain.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[batch.ID]; ok {
		return constants.ErrUniquenessConflict
	}

	batch.CreatedAt = time.Now()
	s.batches[batch.ID] = *batch
	return nil
}

func (s *Store) GetBatch(_ context.Context, id uuid.UUID) (*domain.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &batch, nil
}

func (s *Store) CreateBatchFile(_ context.Context, file *domain.BatchFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[file.BatchID]; !ok {
		return constants.ErrDBNotFound
	}

	file.ID = s.nextID()
	file.CreatedAt = time.Now()
	s.files[file.ID] = *file
	return nil
}

func (s *Store) GetBatchFile(_ context.Context, id int64) (*domain.BatchFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &file, nil
}

func (s *Store) BumpFileCounters(_ context.Context, fileID int64, okDelta, errDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.files[fileID]
	if !ok {
		return constants.ErrDBNotFound
	}

	file.RowsOK += okDelta
	file.RowsError += errDelta
	s.files[fileID] = file
	return nil
}

func (s *Store) CreateRowError(_ context.Context, rowError *domain.RowError) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[rowError.FileID]; !ok {
		return constants.ErrDBNotFound
	}

	rowError.ID = s.nextID()
	rowError.CreatedAt = time.Now()
	s.rowErrors[rowError.ID] = *rowError
	return nil
}

func (s *Store) ListRowErrors(_ context.Context, fileID int64) ([]*domain.RowError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.RowError
	for id := range s.rowErrors {
		if s.rowErrors[id].FileID == fileID {
			rowError := s.rowErrors[id]
			out = append(out, &rowError)
		}
	}
	return out, nil
}
