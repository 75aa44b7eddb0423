package ingest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/pkg/store/memstore"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/duacyd/analitica/internal/service/ingest"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }

type fixture struct {
	store  *memstore.Store
	ingest *ingest.Service

	areaID           int64
	programID        int64
	periodID         int64
	plainIndicator   int64
	programIndicator int64
	userID           int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	area := &domain.Area{Name: "Docencia"}
	if err := st.CreateArea(ctx, area); err != nil {
		t.Fatalf("create area: %v", err)
	}
	program := &domain.Program{AreaID: area.ID, Name: "Ing. en Sistemas"}
	if err := st.CreateProgram(ctx, program); err != nil {
		t.Fatalf("create program: %v", err)
	}
	period := &domain.Period{Label: "2025-1", Year: 2025, FrequencyID: 1}
	if err := st.CreatePeriod(ctx, period); err != nil {
		t.Fatalf("create period: %v", err)
	}

	plain := &domain.Indicator{
		AreaID: area.ID, Code: "INGRESOS_CURSOS", Name: "Ingresos por cursos",
		UnitID: 1, FrequencyID: 1, Active: true,
	}
	if err := st.CreateIndicator(ctx, plain); err != nil {
		t.Fatalf("create indicator: %v", err)
	}
	byProgram := &domain.Indicator{
		AreaID: area.ID, Code: "MATRICULA_TOTAL", Name: "Matrícula total",
		UnitID: 1, FrequencyID: 1, RequiresProgramBreakdown: true, Active: true,
	}
	if err := st.CreateIndicator(ctx, byProgram); err != nil {
		t.Fatalf("create indicator: %v", err)
	}

	userID := st.SeedUser(
		domain.User{Email: "capturista@duacyd.mx", Active: true},
		[]string{constants.PermViewDashboard, constants.PermLoadData},
		[]int64{area.ID},
		nil,
	)

	valuesSvc := values.NewService(st, access.NewService(st))

	return &fixture{
		store:            st,
		ingest:           ingest.NewService(st, valuesSvc),
		areaID:           area.ID,
		programID:        program.ID,
		periodID:         period.ID,
		plainIndicator:   plain.ID,
		programIndicator: byProgram.ID,
		userID:           userID,
	}
}

func TestOpenBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch, err := f.ingest.OpenBatch(ctx, f.areaID, f.userID, strPtr("upload"), nil)
	if err != nil {
		t.Fatalf("open batch: %v", err)
	}
	if batch.ID == uuid.Nil {
		t.Fatal("batch should get a uuid")
	}
	if batch.AreaID != f.areaID || batch.UserID != f.userID {
		t.Fatalf("batch = %+v, want area %d user %d", batch, f.areaID, f.userID)
	}

	if _, err = f.ingest.OpenBatch(ctx, 9999, f.userID, nil, nil); !errors.Is(err, constants.ErrAreaNotFound) {
		t.Fatalf("err = %v, want ErrAreaNotFound", err)
	}
	if _, err = f.ingest.OpenBatch(ctx, f.areaID, 9999, nil, nil); !errors.Is(err, constants.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestRecordFileAndCounters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch, err := f.ingest.OpenBatch(ctx, f.areaID, f.userID, nil, nil)
	if err != nil {
		t.Fatalf("open batch: %v", err)
	}

	file, err := f.ingest.RecordFile(ctx, batch.ID, "matricula_2025.csv", "csv", nil)
	if err != nil {
		t.Fatalf("record file: %v", err)
	}

	if err = f.ingest.BumpFileCounters(ctx, file.ID, 40, 2); err != nil {
		t.Fatalf("bump counters: %v", err)
	}
	if err = f.ingest.BumpFileCounters(ctx, file.ID, 10, 1); err != nil {
		t.Fatalf("bump counters: %v", err)
	}

	stored, err := f.store.GetBatchFile(ctx, file.ID)
	if err != nil {
		t.Fatalf("get file: %v", err)
	}
	if stored.RowsOK != 50 || stored.RowsError != 3 {
		t.Fatalf("counters = %d/%d, want 50/3", stored.RowsOK, stored.RowsError)
	}

	if _, err = f.ingest.RecordFile(ctx, uuid.New(), "x.csv", "csv", nil); !errors.Is(err, constants.ErrBatchNotFound) {
		t.Fatalf("err = %v, want ErrBatchNotFound", err)
	}
	if err = f.ingest.BumpFileCounters(ctx, 9999, 1, 0); !errors.Is(err, constants.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestRowErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch, err := f.ingest.OpenBatch(ctx, f.areaID, f.userID, nil, nil)
	if err != nil {
		t.Fatalf("open batch: %v", err)
	}
	file, err := f.ingest.RecordFile(ctx, batch.ID, "ingresos.xlsx", "xlsx", nil)
	if err != nil {
		t.Fatalf("record file: %v", err)
	}

	if err = f.ingest.RecordRowError(ctx, file.ID, 3, "monto no numérico", strPtr(`{"monto":"n/a"}`)); err != nil {
		t.Fatalf("record row error: %v", err)
	}
	if err = f.ingest.RecordRowError(ctx, file.ID, 7, "programa desconocido", nil); err != nil {
		t.Fatalf("record row error: %v", err)
	}

	rowErrors, err := f.ingest.RowErrors(ctx, file.ID)
	if err != nil {
		t.Fatalf("row errors: %v", err)
	}
	if len(rowErrors) != 2 {
		t.Fatalf("got %d row errors, want 2", len(rowErrors))
	}

	if err = f.ingest.RecordRowError(ctx, 9999, 1, "x", nil); !errors.Is(err, constants.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
	if _, err = f.ingest.RowErrors(ctx, 9999); !errors.Is(err, constants.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
}

func TestLoadValuesPartialSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	batch, err := f.ingest.OpenBatch(ctx, f.areaID, f.userID, nil, nil)
	if err != nil {
		t.Fatalf("open batch: %v", err)
	}

	// seed an existing row so one load row is an update
	report, err := f.ingest.LoadValues(ctx, batch.ID, f.userID, []domain.LoadValueRow{
		{RowNumber: 1, IndicatorID: f.plainIndicator, PeriodID: f.periodID, Amount: decimal.NewFromInt(1500)},
	})
	if err != nil {
		t.Fatalf("seed load: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("seed load inserted %d, want 1", report.Inserted)
	}

	rows := []domain.LoadValueRow{
		{RowNumber: 1, IndicatorID: f.plainIndicator, PeriodID: f.periodID, Amount: decimal.NewFromInt(1520)},
		{RowNumber: 2, IndicatorID: f.programIndicator, PeriodID: f.periodID, ProgramID: int64Ptr(f.programID), Amount: decimal.RequireFromString("125000.50")},
		{RowNumber: 3, IndicatorID: f.programIndicator, PeriodID: f.periodID, Amount: decimal.NewFromInt(10)},
		{RowNumber: 4, IndicatorID: 9999, PeriodID: f.periodID, Amount: decimal.NewFromInt(10)},
	}

	report, err = f.ingest.LoadValues(ctx, batch.ID, f.userID, rows)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	if report.Inserted != 1 || report.Updated != 1 {
		t.Fatalf("report = %d inserted / %d updated, want 1/1", report.Inserted, report.Updated)
	}
	if len(report.Failed) != 2 {
		t.Fatalf("report holds %d failed rows, want 2", len(report.Failed))
	}

	failedRows := map[int]bool{}
	for _, failure := range report.Failed {
		failedRows[failure.RowNumber] = true
	}
	if !failedRows[3] || !failedRows[4] {
		t.Fatalf("failed rows = %v, want rows 3 and 4", report.Failed)
	}

	// committed rows survive the failures and carry the batch reference
	stored, err := f.store.GetValueByKey(ctx, f.plainIndicator, f.periodID, domain.NoProgramKey)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(1520)) {
		t.Fatalf("stored amount = %s, want 1520", stored.Amount)
	}
	if stored.BatchID == nil || *stored.BatchID != batch.ID {
		t.Fatalf("stored batch_id = %v, want %s", stored.BatchID, batch.ID)
	}

	ledger, err := f.store.ListValues(ctx, store.ListValuesOpts{AreaID: &f.areaID})
	if err != nil {
		t.Fatalf("list values: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("ledger holds %d rows, want 2", len(ledger))
	}
}

func TestLoadValuesUnknownBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ingest.LoadValues(ctx, uuid.New(), f.userID, []domain.LoadValueRow{
		{RowNumber: 1, IndicatorID: f.plainIndicator, PeriodID: f.periodID, Amount: decimal.NewFromInt(1)},
	})
	if !errors.Is(err, constants.ErrBatchNotFound) {
		t.Fatalf("err = %v, want ErrBatchNotFound", err)
	}
}
