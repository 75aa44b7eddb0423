package controller

import (
	"net/http"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/labstack/echo/v4"
)

func (c *Controller) ListAreas(ctx echo.Context) error {
	areas, err := c.catalog.ListAreas(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, areas)
}

func (c *Controller) CreateArea(ctx echo.Context) error {
	req := new(domain.CreateAreaRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	area, err := c.catalog.CreateArea(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, area)
}

func (c *Controller) ListProgramsByArea(ctx echo.Context) error {
	areaID, err := pathID(ctx)
	if err != nil {
		return err
	}

	programs, err := c.catalog.ListProgramsByArea(ctx.Request().Context(), areaID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, programs)
}

func (c *Controller) CreateProgram(ctx echo.Context) error {
	req := new(domain.CreateProgramRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	program, err := c.catalog.CreateProgram(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, program)
}

func (c *Controller) ListIndicatorsByArea(ctx echo.Context) error {
	areaID, err := pathID(ctx)
	if err != nil {
		return err
	}

	indicators, err := c.catalog.ListIndicatorsByArea(ctx.Request().Context(), areaID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) CreateIndicator(ctx echo.Context) error {
	req := new(domain.CreateIndicatorRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	indicator, err := c.catalog.CreateIndicator(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, indicator)
}

func (c *Controller) GetIndicatorByCode(ctx echo.Context) error {
	indicator, err := c.catalog.GetIndicatorByCode(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, indicator)
}

func (c *Controller) GetPeriodByLabel(ctx echo.Context) error {
	period, err := c.catalog.GetPeriodByLabel(ctx.Request().Context(), ctx.Param("label"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, period)
}

func (c *Controller) ListPeriods(ctx echo.Context) error {
	periods, err := c.catalog.ListPeriods(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, periods)
}

func (c *Controller) CreatePeriod(ctx echo.Context) error {
	req := new(domain.CreatePeriodRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}
	if err := ctx.Validate(req); err != nil {
		return err
	}

	period, err := c.catalog.CreatePeriod(ctx.Request().Context(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, period)
}

func (c *Controller) ListUnits(ctx echo.Context) error {
	units, err := c.catalog.ListUnits(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, units)
}

func (c *Controller) ListFrequencies(ctx echo.Context) error {
	frequencies, err := c.catalog.ListFrequencies(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, frequencies)
}

func (c *Controller) ListCategories(ctx echo.Context) error {
	categories, err := c.catalog.ListCategories(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, categories)
}

func (c *Controller) ListSources(ctx echo.Context) error {
	sources, err := c.catalog.ListSources(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sources)
}
