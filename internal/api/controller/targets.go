package controller

import (
	"net/http"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/service/targets"
	"github.com/labstack/echo/v4"
)

func (c *Controller) UpsertTarget(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.UpsertTargetRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	result, err := c.targets.Upsert(ctx.Request().Context(), targets.UpsertParams{
		IndicatorID: req.IndicatorID,
		PeriodID:    req.PeriodID,
		ProgramID:   req.ProgramID,
		Amount:      req.Amount,
		Comment:     req.Comment,
		UserID:      userID,
	})
	if err != nil {
		return err
	}

	code := http.StatusOK
	if result.Inserted {
		code = http.StatusCreated
	}
	return ctx.JSON(code, result)
}

func (c *Controller) GetTarget(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	indicatorID, err := queryInt64(ctx, "indicator_id")
	if err != nil {
		return err
	}
	periodID, err := queryInt64(ctx, "period_id")
	if err != nil {
		return err
	}
	if indicatorID == nil || periodID == nil {
		return constants.NewCodedError(http.StatusBadRequest, "indicator_id and period_id are required")
	}
	programID, err := queryInt64(ctx, "program_id")
	if err != nil {
		return err
	}

	target, err := c.targets.Get(ctx.Request().Context(), userID, *indicatorID, *periodID, programID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, target)
}
