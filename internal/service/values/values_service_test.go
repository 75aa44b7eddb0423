package values_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/pkg/store/memstore"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/shopspring/decimal"
)

func int64Ptr(v int64) *int64 { return &v }

type fixture struct {
	store  *memstore.Store
	values *values.Service

	areaID      int64
	otherAreaID int64

	programID      int64
	otherProgramID int64
	foreignProgram int64

	periodID      int64
	otherPeriodID int64

	plainIndicator   int64
	programIndicator int64

	userID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	docencia := &domain.Area{Name: "Docencia"}
	if err := st.CreateArea(ctx, docencia); err != nil {
		t.Fatalf("create area: %v", err)
	}
	vinculacion := &domain.Area{Name: "Vinculación"}
	if err := st.CreateArea(ctx, vinculacion); err != nil {
		t.Fatalf("create area: %v", err)
	}

	sistemas := &domain.Program{AreaID: docencia.ID, Name: "Ing. en Sistemas"}
	if err := st.CreateProgram(ctx, sistemas); err != nil {
		t.Fatalf("create program: %v", err)
	}
	gestion := &domain.Program{AreaID: docencia.ID, Name: "Lic. en Gestión"}
	if err := st.CreateProgram(ctx, gestion); err != nil {
		t.Fatalf("create program: %v", err)
	}
	diplomados := &domain.Program{AreaID: vinculacion.ID, Name: "Diplomados"}
	if err := st.CreateProgram(ctx, diplomados); err != nil {
		t.Fatalf("create program: %v", err)
	}

	semestral := &domain.Period{Label: "2025-1", Year: 2025, FrequencyID: 1}
	if err := st.CreatePeriod(ctx, semestral); err != nil {
		t.Fatalf("create period: %v", err)
	}
	siguiente := &domain.Period{Label: "2025-2", Year: 2025, FrequencyID: 1}
	if err := st.CreatePeriod(ctx, siguiente); err != nil {
		t.Fatalf("create period: %v", err)
	}

	ingresos := &domain.Indicator{
		AreaID: docencia.ID, Code: "INGRESOS_CURSOS", Name: "Ingresos por cursos",
		UnitID: 1, FrequencyID: 1, Active: true,
	}
	if err := st.CreateIndicator(ctx, ingresos); err != nil {
		t.Fatalf("create indicator: %v", err)
	}
	matricula := &domain.Indicator{
		AreaID: docencia.ID, Code: "MATRICULA_TOTAL", Name: "Matrícula total",
		UnitID: 1, FrequencyID: 1, RequiresProgramBreakdown: true, Active: true,
	}
	if err := st.CreateIndicator(ctx, matricula); err != nil {
		t.Fatalf("create indicator: %v", err)
	}

	userID := st.SeedUser(
		domain.User{Email: "capturista@duacyd.mx", Active: true},
		[]string{constants.PermViewDashboard, constants.PermLoadData},
		[]int64{docencia.ID},
		nil,
	)

	return &fixture{
		store:            st,
		values:           values.NewService(st, access.NewService(st)),
		areaID:           docencia.ID,
		otherAreaID:      vinculacion.ID,
		programID:        sistemas.ID,
		otherProgramID:   gestion.ID,
		foreignProgram:   diplomados.ID,
		periodID:         semestral.ID,
		otherPeriodID:    siguiente.ID,
		plainIndicator:   ingresos.ID,
		programIndicator: matricula.ID,
		userID:           userID,
	}
}

func TestUpsertInsertThenUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(1520),
		UserID:      f.userID,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !first.Inserted {
		t.Fatal("first upsert should insert")
	}

	second, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(1534),
		UserID:      f.userID,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Inserted {
		t.Fatal("second upsert should update, not insert")
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert hit row %d, want %d", second.ID, first.ID)
	}

	stored, err := f.store.GetValueByKey(ctx, f.plainIndicator, f.periodID, domain.NoProgramKey)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(1534)) {
		t.Fatalf("stored amount = %s, want 1534", stored.Amount)
	}

	rows, err := f.store.ListValues(ctx, store.ListValuesOpts{IndicatorID: &f.plainIndicator})
	if err != nil {
		t.Fatalf("list values: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ledger holds %d rows for the key, want 1", len(rows))
	}
}

func TestUpsertIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	params := values.UpsertParams{
		IndicatorID: f.programIndicator,
		PeriodID:    f.periodID,
		ProgramID:   int64Ptr(f.programID),
		Amount:      decimal.RequireFromString("125000.50"),
		UserID:      f.userID,
	}

	first, err := f.values.Upsert(ctx, params)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	repeat, err := f.values.Upsert(ctx, params)
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if repeat.ID != first.ID || repeat.Inserted {
		t.Fatalf("repeat upsert = %+v, want update of row %d", repeat, first.ID)
	}

	stored, err := f.store.GetValueByKey(ctx, f.programIndicator, f.periodID, f.programID)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if !stored.Amount.Equal(decimal.RequireFromString("125000.50")) {
		t.Fatalf("stored amount = %s, want 125000.50", stored.Amount)
	}
}

func TestUpsertProgramRequired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.programIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(100),
		UserID:      f.userID,
	})
	if !errors.Is(err, constants.ErrProgramRequired) {
		t.Fatalf("err = %v, want ErrProgramRequired", err)
	}
}

func TestUpsertDropsProgramWhenNotRequired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		ProgramID:   int64Ptr(f.programID),
		Amount:      decimal.NewFromInt(1520),
		UserID:      f.userID,
	}); err != nil {
		t.Fatalf("upsert with spurious program: %v", err)
	}

	stored, err := f.store.GetValueByKey(ctx, f.plainIndicator, f.periodID, domain.NoProgramKey)
	if err != nil {
		t.Fatalf("value should land on the no-program key: %v", err)
	}
	if stored.ProgramID != nil {
		t.Fatalf("stored program_id = %d, want nil", *stored.ProgramID)
	}

	// a later write without the spurious program must hit the same row
	repeat, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(1600),
		UserID:      f.userID,
	})
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if repeat.Inserted {
		t.Fatal("dropped-program write and no-program write should share one row")
	}
}

func TestUpsertProgramAreaMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.programIndicator,
		PeriodID:    f.periodID,
		ProgramID:   int64Ptr(f.foreignProgram),
		Amount:      decimal.NewFromInt(100),
		UserID:      f.userID,
	})
	if !errors.Is(err, constants.ErrProgramAreaMismatch) {
		t.Fatalf("err = %v, want ErrProgramAreaMismatch", err)
	}
}

func TestUpsertDistinctProgramsDistinctRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, programID := range []int64{f.programID, f.otherProgramID} {
		result, err := f.values.Upsert(ctx, values.UpsertParams{
			IndicatorID: f.programIndicator,
			PeriodID:    f.periodID,
			ProgramID:   int64Ptr(programID),
			Amount:      decimal.NewFromInt(programID * 10),
			UserID:      f.userID,
		})
		if err != nil {
			t.Fatalf("upsert program %d: %v", programID, err)
		}
		if !result.Inserted {
			t.Fatalf("program %d should get its own row", programID)
		}
	}

	rows, err := f.store.ListValues(ctx, store.ListValuesOpts{IndicatorID: &f.programIndicator})
	if err != nil {
		t.Fatalf("list values: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ledger holds %d rows, want 2", len(rows))
	}
}

func TestUpsertAreaComesFromIndicator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(1),
		UserID:      f.userID,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stored, err := f.store.GetValueByKey(ctx, f.plainIndicator, f.periodID, domain.NoProgramKey)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if stored.AreaID != f.areaID {
		t.Fatalf("stored area_id = %d, want the indicator's area %d", stored.AreaID, f.areaID)
	}
}

func TestUpsertUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name   string
		params values.UpsertParams
		want   error
	}{
		{
			name: "unknown indicator",
			params: values.UpsertParams{
				IndicatorID: 9999, PeriodID: f.periodID,
				Amount: decimal.NewFromInt(1), UserID: f.userID,
			},
			want: constants.ErrIndicatorNotFound,
		},
		{
			name: "unknown period",
			params: values.UpsertParams{
				IndicatorID: f.plainIndicator, PeriodID: 9999,
				Amount: decimal.NewFromInt(1), UserID: f.userID,
			},
			want: constants.ErrPeriodNotFound,
		},
		{
			name: "unknown user",
			params: values.UpsertParams{
				IndicatorID: f.plainIndicator, PeriodID: f.periodID,
				Amount: decimal.NewFromInt(1), UserID: 9999,
			},
			want: constants.ErrUserNotFound,
		},
		{
			name: "unknown program",
			params: values.UpsertParams{
				IndicatorID: f.programIndicator, PeriodID: f.periodID,
				ProgramID: int64Ptr(9999),
				Amount:    decimal.NewFromInt(1), UserID: f.userID,
			},
			want: constants.ErrProgramNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.values.Upsert(ctx, tc.params); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpsertPermissionDenied(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reader := f.store.SeedUser(
		domain.User{Email: "analista@duacyd.mx", Active: true},
		[]string{constants.PermViewDashboard},
		[]int64{f.areaID},
		nil,
	)
	outsider := f.store.SeedUser(
		domain.User{Email: "externo@duacyd.mx", Active: true},
		[]string{constants.PermViewDashboard, constants.PermLoadData},
		[]int64{f.otherAreaID},
		nil,
	)

	for _, userID := range []int64{reader, outsider} {
		_, err := f.values.Upsert(ctx, values.UpsertParams{
			IndicatorID: f.plainIndicator,
			PeriodID:    f.periodID,
			Amount:      decimal.NewFromInt(1),
			UserID:      userID,
		})
		if !errors.Is(err, constants.ErrPermissionDenied) {
			t.Fatalf("user %d: err = %v, want ErrPermissionDenied", userID, err)
		}
	}
}

func TestUpsertConcurrentSameKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const writers = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(amount int64) {
			defer wg.Done()
			result, err := f.values.Upsert(ctx, values.UpsertParams{
				IndicatorID: f.plainIndicator,
				PeriodID:    f.periodID,
				Amount:      decimal.NewFromInt(amount),
				UserID:      f.userID,
			})
			if err != nil {
				t.Errorf("concurrent upsert: %v", err)
				return
			}
			mu.Lock()
			if result.Inserted {
				inserted++
			}
			mu.Unlock()
		}(int64(i + 1))
	}
	wg.Wait()

	if inserted != 1 {
		t.Fatalf("%d writers saw an insert, want exactly 1", inserted)
	}
	rows, err := f.store.ListValues(ctx, store.ListValuesOpts{IndicatorID: &f.plainIndicator})
	if err != nil {
		t.Fatalf("list values: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ledger holds %d rows for the key, want 1", len(rows))
	}
}

func TestListAuthorizedByIndicatorArea(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.values.Upsert(ctx, values.UpsertParams{
		IndicatorID: f.plainIndicator,
		PeriodID:    f.periodID,
		Amount:      decimal.NewFromInt(1520),
		UserID:      f.userID,
	}); err != nil {
		t.Fatalf("seed upsert: %v", err)
	}

	rows, err := f.values.List(ctx, f.userID, store.ListValuesOpts{IndicatorID: &f.plainIndicator})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("list returned %d rows, want 1", len(rows))
	}

	outsider := f.store.SeedUser(
		domain.User{Email: "externo@duacyd.mx", Active: true},
		[]string{constants.PermViewDashboard},
		[]int64{f.otherAreaID},
		nil,
	)
	if _, err = f.values.List(ctx, outsider, store.ListValuesOpts{IndicatorID: &f.plainIndicator}); !errors.Is(err, constants.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}

	if _, err = f.values.List(ctx, f.userID, store.ListValuesOpts{}); !errors.Is(err, constants.ErrPermissionDenied) {
		t.Fatalf("unfiltered list: err = %v, want ErrPermissionDenied", err)
	}
}
