package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
)

var userColumns = []string{"id", "email", "first_name", "last_name", "active", "created_at"}

func (s *store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := builder().Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"id": id})

	var selected domain.User
	if err := xpgx.Getx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

type grantRow struct {
	Name string `db:"name"`
}

type scopeRow struct {
	ID int64 `db:"id"`
}

// GetUserGrants resolves the union of permissions over the user's roles plus
// the explicit area and program scope grants, in one round per grant table.
func (s *store) GetUserGrants(ctx context.Context, userID int64) (*domain.UserGrants, error) {
	grants := &domain.UserGrants{
		UserID:      userID,
		Permissions: map[string]struct{}{},
		AreaIDs:     map[int64]struct{}{},
		ProgramIDs:  map[int64]struct{}{},
	}

	permQuery := builder().Select("distinct p.name as name").
		From(tableUserRoles + " ur").
		Join(tableRolePerms + " rp on rp.role_id = ur.role_id").
		Join(tablePermissions + " p on p.id = rp.permission_id").
		Where(sq.Eq{"ur.user_id": userID})

	var perms []*grantRow
	if err := xpgx.Selectx(ctx, s.pool, &perms, permQuery); err != nil {
		return nil, fmt.Errorf("select permissions: %w", wrapErr(err))
	}
	for _, p := range perms {
		grants.Permissions[p.Name] = struct{}{}
	}

	areaQuery := builder().Select("area_id as id").
		From(tableAreaScopes).
		Where(sq.Eq{"user_id": userID})

	var areas []*scopeRow
	if err := xpgx.Selectx(ctx, s.pool, &areas, areaQuery); err != nil {
		return nil, fmt.Errorf("select area scopes: %w", wrapErr(err))
	}
	for _, a := range areas {
		grants.AreaIDs[a.ID] = struct{}{}
	}

	programQuery := builder().Select("program_id as id").
		From(tableProgScopes).
		Where(sq.Eq{"user_id": userID})

	var programs []*scopeRow
	if err := xpgx.Selectx(ctx, s.pool, &programs, programQuery); err != nil {
		return nil, fmt.Errorf("select program scopes: %w", wrapErr(err))
	}
	for _, p := range programs {
		grants.ProgramIDs[p.ID] = struct{}{}
	}

	return grants, nil
}
