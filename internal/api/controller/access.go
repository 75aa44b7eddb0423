package controller

import (
	"net/http"

	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

type checkAccessResponse struct {
	Allowed bool `json:"allowed"`
}

// CheckAccess answers whether the acting user may read or write the given
// area (and optionally program). Denial is a false answer, not an error.
func (c *Controller) CheckAccess(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	areaID, err := queryInt64(ctx, "area_id")
	if err != nil {
		return err
	}
	if areaID == nil {
		return constants.NewCodedError(http.StatusBadRequest, "area_id is required")
	}
	programID, err := queryInt64(ctx, "program_id")
	if err != nil {
		return err
	}

	action := constants.ActionRead
	if ctx.QueryParams().Get("action") == string(constants.ActionWrite) {
		action = constants.ActionWrite
	}

	allowed, err := c.access.CanAccess(ctx.Request().Context(), userID, *areaID, programID, action)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, checkAccessResponse{Allowed: allowed})
}
