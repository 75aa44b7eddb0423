package controller

import (
	"strconv"

	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/duacyd/analitica/internal/service/catalog"
	"github.com/duacyd/analitica/internal/service/ingest"
	"github.com/duacyd/analitica/internal/service/targets"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	values  *values.Service
	targets *targets.Service
	ingest  *ingest.Service
	catalog *catalog.Service
	access  *access.Service
}

func NewController(
	values *values.Service,
	targets *targets.Service,
	ingest *ingest.Service,
	catalog *catalog.Service,
	access *access.Service,
) *Controller {
	return &Controller{
		values:  values,
		targets: targets,
		ingest:  ingest,
		catalog: catalog,
		access:  access,
	}
}

// actingUserID returns the user the auth middleware resolved for this request.
func actingUserID(ctx echo.Context) (int64, error) {
	userID, ok := ctx.Get(constants.CtxKeyUserID).(int64)
	if !ok || userID == 0 {
		return 0, constants.ErrUnauthorized
	}
	return userID, nil
}

func pathID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, constants.ErrDBNotFound
	}
	return id, nil
}

// queryInt64 reads an optional int64 query parameter, nil when absent.
func queryInt64(ctx echo.Context, name string) (*int64, error) {
	raw := ctx.QueryParams().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, constants.NewCodedError(400, "invalid "+name)
	}
	return &parsed, nil
}
