package memstore

import (
	"context"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
)

func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return &user, nil
}

func (s *Store) GetUserGrants(_ context.Context, userID int64) (*domain.UserGrants, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grants := domain.UserGrants{
		UserID:      userID,
		Permissions: map[string]struct{}{},
		AreaIDs:     map[int64]struct{}{},
		ProgramIDs:  map[int64]struct{}{},
	}
	stored, ok := s.grants[userID]
	if !ok {
		return &grants, nil
	}

	for name := range stored.Permissions {
		grants.Permissions[name] = struct{}{}
	}
	for id := range stored.AreaIDs {
		grants.AreaIDs[id] = struct{}{}
	}
	for id := range stored.ProgramIDs {
		grants.ProgramIDs[id] = struct{}{}
	}
	return &grants, nil
}

// SeedUser registers a user with its effective permissions and scope grants.
// Provisioning helper for tests and ephemeral runs; the SQL store gets this
// data from the RBAC grant tables instead.
func (s *Store) SeedUser(user domain.User, permissions []string, areaIDs, programIDs []int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID()
	}
	s.users[user.ID] = user

	grants := domain.UserGrants{
		UserID:      user.ID,
		Permissions: map[string]struct{}{},
		AreaIDs:     map[int64]struct{}{},
		ProgramIDs:  map[int64]struct{}{},
	}
	for _, name := range permissions {
		grants.Permissions[name] = struct{}{}
	}
	for _, id := range areaIDs {
		grants.AreaIDs[id] = struct{}{}
	}
	for _, id := range programIDs {
		grants.ProgramIDs[id] = struct{}{}
	}
	s.grants[user.ID] = grants

	return user.ID
}

// SeedCatalog registers lookup rows for tests.
func (s *Store) SeedCatalog(units []domain.Unit, frequencies []domain.Frequency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, unit := range units {
		if unit.ID == 0 {
			unit.ID = s.nextID()
		}
		s.units[unit.ID] = unit
	}
	for _, frequency := range frequencies {
		if frequency.ID == 0 {
			frequency.ID = s.nextID()
		}
		s.frequencies[frequency.ID] = frequency
	}
}
