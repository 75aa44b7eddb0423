package store

import (
	"context"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
	"github.com/google/uuid"
)

type Pool = xpgx.Pool

// Store is the persistence surface of the integrity core. The postgres
// implementation enforces the one-row-per-(indicator, period, program) rule
// with a unique index over the sentinel program_key column, so the constraint
// holds even when concurrent writers race past the application's own checks.
type Store interface {
	// catalog
	CreateArea(ctx context.Context, area *domain.Area) error
	GetArea(ctx context.Context, id int64) (*domain.Area, error)
	ListAreas(ctx context.Context) ([]*domain.Area, error)
	CreateProgram(ctx context.Context, program *domain.Program) error
	GetProgram(ctx context.Context, id int64) (*domain.Program, error)
	ListProgramsByArea(ctx context.Context, areaID int64) ([]*domain.Program, error)
	CreatePeriod(ctx context.Context, period *domain.Period) error
	GetPeriod(ctx context.Context, id int64) (*domain.Period, error)
	GetPeriodByLabel(ctx context.Context, label string) (*domain.Period, error)
	ListPeriods(ctx context.Context) ([]*domain.Period, error)
	ListUnits(ctx context.Context) ([]*domain.Unit, error)
	ListFrequencies(ctx context.Context) ([]*domain.Frequency, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListSources(ctx context.Context) ([]*domain.Source, error)

	// indicator registry
	CreateIndicator(ctx context.Context, indicator *domain.Indicator) error
	GetIndicator(ctx context.Context, id int64) (*domain.Indicator, error)
	GetIndicatorByCode(ctx context.Context, code string) (*domain.Indicator, error)
	ListIndicatorsByArea(ctx context.Context, areaID int64) ([]*domain.Indicator, error)

	// value ledger
	UpsertValue(ctx context.Context, value *domain.Value) (*domain.UpsertResult, error)
	GetValueByKey(ctx context.Context, indicatorID, periodID, programKey int64) (*domain.Value, error)
	ListValues(ctx context.Context, opts ListValuesOpts) ([]*domain.Value, error)

	// targets
	UpsertTarget(ctx context.Context, target *domain.Target) (*domain.UpsertResult, error)
	GetTargetByKey(ctx context.Context, indicatorID, periodID, programKey int64) (*domain.Target, error)

	// ingestion batches
	CreateBatch(ctx context.Context, batch *domain.Batch) error
	GetBatch(ctx context.Context, id uuid.UUID) (*domain.Batch, error)
	CreateBatchFile(ctx context.Context, file *domain.BatchFile) error
	GetBatchFile(ctx context.Context, id int64) (*domain.BatchFile, error)
	BumpFileCounters(ctx context.Context, fileID int64, okDelta, errDelta int) error
	CreateRowError(ctx context.Context, rowError *domain.RowError) error
	ListRowErrors(ctx context.Context, fileID int64) ([]*domain.RowError, error)

	// access
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserGrants(ctx context.Context, userID int64) (*domain.UserGrants, error)
}

type ListValuesOpts struct {
	IndicatorID *int64
	PeriodID    *int64
	AreaID      *int64
	ProgramID   *int64
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
