package access

import (
	"context"
	"sync"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/spf13/viper"
)

type Service struct {
	store store.Store
}

func NewService(store store.Store) *Service {
	return &Service{store: store}
}

type cacheKey struct{}

type grantCache struct {
	mu     sync.Mutex
	grants map[int64]*domain.UserGrants
}

// WithCache returns a ctx carrying a request-scoped grant cache, so repeated
// checks within one request resolve the role/permission union only once.
func WithCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, cacheKey{}, &grantCache{grants: map[int64]*domain.UserGrants{}})
}

func (s *Service) grantsFor(ctx context.Context, userID int64) (*domain.UserGrants, error) {
	cache, _ := ctx.Value(cacheKey{}).(*grantCache)
	if cache != nil {
		cache.mu.Lock()
		if grants, ok := cache.grants[userID]; ok {
			cache.mu.Unlock()
			return grants, nil
		}
		cache.mu.Unlock()
	}

	grants, err := s.store.GetUserGrants(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.mu.Lock()
		cache.grants[userID] = grants
		cache.mu.Unlock()
	}

	return grants, nil
}

// CanAccess answers whether the user may act on the area (and program, when
// given). Missing users and missing scopes yield false, never an error: the
// absence of a grant is itself the answer.
//
// Area scoping defaults to deny-by-absence; the access.allow_unscoped policy
// flag treats a user with zero area grants as unrestricted instead. Program
// scoping is restrictive only once the user has program grants configured.
func (s *Service) CanAccess(ctx context.Context, userID, areaID int64, programID *int64, action constants.Action) (bool, error) {
	grants, err := s.grantsFor(ctx, userID)
	if err != nil {
		return false, err
	}

	perm := constants.PermViewDashboard
	if action == constants.ActionWrite {
		perm = constants.PermLoadData
	}
	if !grants.HasPermission(perm) {
		return false, nil
	}

	if _, ok := grants.AreaIDs[areaID]; !ok {
		unscoped := len(grants.AreaIDs) == 0 && viper.GetBool(constants.ViperAllowUnscoped)
		if !unscoped {
			return false, nil
		}
	}

	if programID != nil && len(grants.ProgramIDs) > 0 {
		if _, ok := grants.ProgramIDs[*programID]; !ok {
			return false, nil
		}
	}

	return true, nil
}
