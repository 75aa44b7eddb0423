package store

import (
	"errors"

	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const (
	tableAreas       = "areas"
	tablePrograms    = "programs"
	tableUnits       = "units"
	tableFrequencies = "frequencies"
	tableCategories  = "categories"
	tableSources     = "sources"
	tablePeriods     = "periods"
	tableIndicators  = "indicators"
	tableValues      = "indicator_values"
	tableTargets     = "indicator_targets"
	tableBatches     = "batches"
	tableBatchFiles  = "batch_files"
	tableRowErrors   = "batch_row_errors"
	tableUsers       = "users"
	tableUserRoles   = "user_roles"
	tableRolePerms   = "role_permissions"
	tablePermissions = "permissions"
	tableAreaScopes  = "user_area_scopes"
	tableProgScopes  = "user_program_scopes"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	if xpgx.IsUniqueViolation(err) {
		return constants.ErrUniquenessConflict
	}
	return err
}

// builder returns a squirrel statement builder with postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
