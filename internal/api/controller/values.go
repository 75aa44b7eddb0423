package controller

import (
	"net/http"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/labstack/echo/v4"
)

func (c *Controller) UpsertValue(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.UpsertValueRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	result, err := c.values.Upsert(ctx.Request().Context(), values.UpsertParams{
		IndicatorID: req.IndicatorID,
		PeriodID:    req.PeriodID,
		ProgramID:   req.ProgramID,
		Amount:      req.Amount,
		Note:        req.Note,
		BatchID:     req.BatchID,
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

func (c *Controller) ListValues(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	var opts store.ListValuesOpts
	if opts.IndicatorID, err = queryInt64(ctx, "indicator_id"); err != nil {
		return err
	}
	if opts.PeriodID, err = queryInt64(ctx, "period_id"); err != nil {
		return err
	}
	if opts.AreaID, err = queryInt64(ctx, "area_id"); err != nil {
		return err
	}
	if opts.ProgramID, err = queryInt64(ctx, "program_id"); err != nil {
		return err
	}

	rows, err := c.values.List(ctx.Request().Context(), userID, opts)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rows)
}
