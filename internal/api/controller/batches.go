package controller

import (
	"net/http"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (c *Controller) OpenBatch(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.OpenBatchRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	batch, err := c.ingest.OpenBatch(ctx.Request().Context(), req.AreaID, userID, req.Origin, req.Description)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, batch)
}

func pathBatchID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, constants.ErrBatchNotFound
	}
	return id, nil
}

func (c *Controller) RecordFile(ctx echo.Context) error {
	batchID, err := pathBatchID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.RecordFileRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	file, err := c.ingest.RecordFile(ctx.Request().Context(), batchID, req.Filename, req.FileType, req.Path)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, file)
}

func (c *Controller) LoadValues(ctx echo.Context) error {
	userID, err := actingUserID(ctx)
	if err != nil {
		return err
	}
	batchID, err := pathBatchID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.LoadValuesRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	report, err := c.ingest.LoadValues(ctx.Request().Context(), batchID, userID, req.Rows)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}

func (c *Controller) RecordRowError(ctx echo.Context) error {
	fileID, err := pathID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.RecordRowErrorRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	if err = c.ingest.RecordRowError(ctx.Request().Context(), fileID, req.RowNumber, req.Message, req.Payload); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *Controller) ListRowErrors(ctx echo.Context) error {
	fileID, err := pathID(ctx)
	if err != nil {
		return err
	}

	rowErrors, err := c.ingest.RowErrors(ctx.Request().Context(), fileID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rowErrors)
}

func (c *Controller) BumpFileCounters(ctx echo.Context) error {
	fileID, err := pathID(ctx)
	if err != nil {
		return err
	}

	req := new(domain.BumpCountersRequest)
	if err = ctx.Bind(req); err != nil {
		return err
	}
	if err = ctx.Validate(req); err != nil {
		return err
	}

	if err = c.ingest.BumpFileCounters(ctx.Request().Context(), fileID, req.RowsOK, req.RowsError); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
