package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
	"github.com/google/uuid"
)

var (
	batchColumns    = []string{"id", "area_id", "user_id", "origin", "description", "created_at"}
	fileColumns     = []string{"id", "batch_id", "filename", "file_type", "path", "rows_ok", "rows_error", "created_at"}
	rowErrorColumns = []string{"id", "file_id", "row_number", "message", "payload", "created_at"}
)

func (s *store) CreateBatch(ctx context.Context, batch *domain.Batch) error {
	query := builder().Insert(tableBatches).
		Columns("id", "area_id", "user_id", "origin", "description").
		Values(batch.ID, batch.AreaID, batch.UserID, batch.Origin, batch.Description).
		Suffix("RETURNING " + strings.Join(batchColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, batch, query); err != nil {
		return fmt.Errorf("insert batch: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetBatch(ctx context.Context, id uuid.UUID) (*domain.Batch, error) {
	query := builder().Select(batchColumns...).
		From(tableBatches).
		Where(sq.Eq{"id": id})

	var selected domain.Batch
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) CreateBatchFile(ctx context.Context, file *domain.BatchFile) error {
	query := builder().Insert(tableBatchFiles).
		Columns("batch_id", "filename", "file_type", "path").
		Values(file.BatchID, file.Filename, file.FileType, file.Path).
		Suffix("RETURNING " + strings.Join(fileColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, file, query); err != nil {
		return fmt.Errorf("insert batch file: %w", wrapErr(err))
	}

	return nil
}

func (s *store) GetBatchFile(ctx context.Context, id int64) (*domain.BatchFile, error) {
	query := builder().Select(fileColumns...).
		From(tableBatchFiles).
		Where(sq.Eq{"id": id})

	var selected domain.BatchFile
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

// BumpFileCounters adds the caller's processed-row deltas; counters are the
// only mutable part of a file record.
func (s *store) BumpFileCounters(ctx context.Context, fileID int64, okDelta, errDelta int) error {
	query := builder().Update(tableBatchFiles).
		Set("rows_ok", sq.Expr("rows_ok + ?", okDelta)).
		Set("rows_error", sq.Expr("rows_error + ?", errDelta)).
		Where(sq.Eq{"id": fileID})

	tag, err := s.pool.Execx(ctx, query)
	if err != nil {
		return fmt.Errorf("bump file counters: %w", wrapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", fileID, constants.ErrDBNotFound)
	}

	return nil
}

func (s *store) CreateRowError(ctx context.Context, rowError *domain.RowError) error {
	query := builder().Insert(tableRowErrors).
		Columns("file_id", "row_number", "message", "payload").
		Values(rowError.FileID, rowError.RowNumber, rowError.Message, rowError.Payload).
		Suffix("RETURNING " + strings.Join(rowErrorColumns, ", "))

	if err := xpgx.Getx(ctx, s.pool, rowError, query); err != nil {
		return fmt.Errorf("insert row error: %w", wrapErr(err))
	}

	return nil
}

func (s *store) ListRowErrors(ctx context.Context, fileID int64) ([]*domain.RowError, error) {
	query := builder().Select(rowErrorColumns...).
		From(tableRowErrors).
		Where(sq.Eq{"file_id": fileID}).
		OrderBy("row_number")

	var selected []*domain.RowError
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
