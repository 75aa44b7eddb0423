// Package memstore provides an in-memory implementation of the core store
// used by tests and ephemeral environments. It enforces the same key
// uniqueness as the postgres unique indexes, under one mutex.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

// valueKey is the uniqueness key of the ledger and target tables; ProgramKey
// already carries the no-program sentinel.
type valueKey struct {
	IndicatorID int64
	PeriodID    int64
	ProgramKey  int64
}

type Store struct {
	mu sync.Mutex

	seq int64

	areas       map[int64]domain.Area
	programs    map[int64]domain.Program
	periods     map[int64]domain.Period
	units       map[int64]domain.Unit
	frequencies map[int64]domain.Frequency
	categories  map[int64]domain.Category
	sources     map[int64]domain.Source
	indicators  map[int64]domain.Indicator

	values  map[valueKey]domain.Value
	targets map[valueKey]domain.Target

	batches   map[uuid.UUID]domain.Batch
	files     map[int64]domain.BatchFile
	rowErrors map[int64]domain.RowError

	users  map[int64]domain.User
	grants map[int64]domain.UserGrants
}

func New() *Store {
	return &Store{
		areas:       map[int64]domain.Area{},
		programs:    map[int64]domain.Program{},
		periods:     map[int64]domain.Period{},
		units:       map[int64]domain.Unit{},
		frequencies: map[int64]domain.Frequency{},
		categories:  map[int64]domain.Category{},
		sources:     map[int64]domain.Source{},
		indicators:  map[int64]domain.Indicator{},
		values:      map[valueKey]domain.Value{},
		targets:     map[valueKey]domain.Target{},
		batches:     map[uuid.UUID]domain.Batch{},
		files:       map[int64]domain.BatchFile{},
		rowErrors:   map[int64]domain.RowError{},
		users:       map[int64]domain.User{},
		grants:      map[int64]domain.UserGrants{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) CreateArea(_ context.Context, area *domain.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.areas {
		if existing.Name == area.Name {
			return constants.ErrUniquenessConflict
		}
	}

	area.ID = s.nextID()
	area.CreatedAt = time.Now()
	area.UpdatedAt = area.CreatedAt
	s.areas[area.ID] = *area
	return nil
}

func (s *Store) GetArea(_ context.Context, id int64) (*domain.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	area, ok := s.areas[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &area, nil
}

func (s *Store) ListAreas(_ context.Context) ([]*domain.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Area, 0, len(s.areas))
	for id := range s.areas {
		area := s.areas[id]
		out = append(out, &area)
	}
	return out, nil
}

func (s *Store) CreateProgram(_ context.Context, program *domain.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.areas[program.AreaID]; !ok {
		return constants.ErrDBNotFound
	}
	for _, existing := range s.programs {
		if existing.AreaID == program.AreaID && existing.Name == program.Name {
			return constants.ErrUniquenessConflict
		}
	}

	program.ID = s.nextID()
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt
	s.programs[program.ID] = *program
	return nil
}

func (s *Store) GetProgram(_ context.Context, id int64) (*domain.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	program, ok := s.programs[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &program, nil
}

func (s *Store) ListProgramsByArea(_ context.Context, areaID int64) ([]*domain.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Program
	for id := range s.programs {
		if s.programs[id].AreaID == areaID {
			program := s.programs[id]
			out = append(out, &program)
		}
	}
	return out, nil
}

func (s *Store) CreatePeriod(_ context.Context, period *domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.periods {
		if existing.Label == period.Label {
			return constants.ErrUniquenessConflict
		}
	}

	period.ID = s.nextID()
	s.periods[period.ID] = *period
	return nil
}

func (s *Store) GetPeriod(_ context.Context, id int64) (*domain.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	period, ok := s.periods[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &period, nil
}

func (s *Store) GetPeriodByLabel(_ context.Context, label string) (*domain.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.periods {
		if s.periods[id].Label == label {
			period := s.periods[id]
			return &period, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (s *Store) ListPeriods(_ context.Context) ([]*domain.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Period, 0, len(s.periods))
	for id := range s.periods {
		period := s.periods[id]
		out = append(out, &period)
	}
	return out, nil
}

func (s *Store) ListUnits(_ context.Context) ([]*domain.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Unit, 0, len(s.units))
	for id := range s.units {
		unit := s.units[id]
		out = append(out, &unit)
	}
	return out, nil
}

func (s *Store) ListFrequencies(_ context.Context) ([]*domain.Frequency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Frequency, 0, len(s.frequencies))
	for id := range s.frequencies {
		frequency := s.frequencies[id]
		out = append(out, &frequency)
	}
	return out, nil
}

func (s *Store) ListCategories(_ context.Context) ([]*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Category, 0, len(s.categories))
	for id := range s.categories {
		category := s.categories[id]
		out = append(out, &category)
	}
	return out, nil
}

func (s *Store) ListSources(_ context.Context) ([]*domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Source, 0, len(s.sources))
	for id := range s.sources {
		source := s.sources[id]
		out = append(out, &source)
	}
	return out, nil
}

func (s *Store) CreateIndicator(_ context.Context, indicator *domain.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.areas[indicator.AreaID]; !ok {
		return constants.ErrDBNotFound
	}
	for _, existing := range s.indicators {
		if existing.Code == indicator.Code {
			return constants.ErrUniquenessConflict
		}
	}

	indicator.ID = s.nextID()
	indicator.CreatedAt = time.Now()
	indicator.UpdatedAt = indicator.CreatedAt
	s.indicators[indicator.ID] = *indicator
	return nil
}

func (s *Store) GetIndicator(_ context.Context, id int64) (*domain.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	indicator, ok := s.indicators[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &indicator, nil
}

func (s *Store) GetIndicatorByCode(_ context.Context, code string) (*domain.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.indicators {
		if s.indicators[id].Code == code {
			indicator := s.indicators[id]
			return &indicator, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (s *Store) ListIndicatorsByArea(_ context.Context, areaID int64) ([]*domain.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Indicator
	for id := range s.indicators {
		if s.indicators[id].AreaID == areaID {
			indicator := s.indicators[id]
			out = append(out, &indicator)
		}
	}
	return out, nil
}
