package api

import (
	"context"

	"github.com/duacyd/analitica/internal/api/controller"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/logger"
	"github.com/duacyd/analitica/internal/pkg/metrics"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/duacyd/analitica/internal/service/catalog"
	"github.com/duacyd/analitica/internal/service/ingest"
	"github.com/duacyd/analitica/internal/service/targets"
	"github.com/duacyd/analitica/internal/service/values"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/spf13/viper"
)

type APIService struct {
	router *echo.Echo

	accessService  *access.Service
	valuesService  *values.Service
	targetsService *targets.Service
	ingestService  *ingest.Service
	catalogService *catalog.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New()}
	svc.router.HideBanner = true

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return random.String(16) },
	}))
	svc.router.Use(requestContextMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperCORSOrigin)},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.accessService = access.NewService(st)
	svc.valuesService = values.NewService(st, svc.accessService)
	svc.targetsService = targets.NewService(st, svc.accessService)
	svc.ingestService = ingest.NewService(st, svc.valuesService)
	svc.catalogService = catalog.NewService(st)

	svc.router.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := svc.router.Group("/api/v1", svc.AuthMiddleware)
	cntrl := controller.NewController(svc.valuesService, svc.targetsService,
		svc.ingestService, svc.catalogService, svc.accessService)

	valuesGroup := api.Group("/values")
	valuesGroup.POST("", cntrl.UpsertValue)
	valuesGroup.GET("", cntrl.ListValues)

	targetsGroup := api.Group("/targets")
	targetsGroup.POST("", cntrl.UpsertTarget)
	targetsGroup.GET("", cntrl.GetTarget)

	batches := api.Group("/batches")
	batches.POST("", cntrl.OpenBatch)
	batches.POST("/:id/files", cntrl.RecordFile)
	batches.POST("/:id/values", cntrl.LoadValues)

	files := api.Group("/files")
	files.POST("/:id/errors", cntrl.RecordRowError)
	files.GET("/:id/errors", cntrl.ListRowErrors)
	files.POST("/:id/counters", cntrl.BumpFileCounters)

	cat := api.Group("/catalog")
	cat.GET("/areas", cntrl.ListAreas)
	cat.POST("/areas", cntrl.CreateArea)
	cat.GET("/areas/:id/programs", cntrl.ListProgramsByArea)
	cat.POST("/programs", cntrl.CreateProgram)
	cat.GET("/areas/:id/indicators", cntrl.ListIndicatorsByArea)
	cat.POST("/indicators", cntrl.CreateIndicator)
	cat.GET("/indicators/:code", cntrl.GetIndicatorByCode)
	cat.GET("/periods", cntrl.ListPeriods)
	cat.POST("/periods", cntrl.CreatePeriod)
	cat.GET("/periods/:label", cntrl.GetPeriodByLabel)
	cat.GET("/units", cntrl.ListUnits)
	cat.GET("/frequencies", cntrl.ListFrequencies)
	cat.GET("/categories", cntrl.ListCategories)
	cat.GET("/sources", cntrl.ListSources)

	api.GET("/access/check", cntrl.CheckAccess)

	return svc, nil
}
