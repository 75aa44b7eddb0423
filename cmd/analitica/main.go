package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/duacyd/analitica/internal/api"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/logger"
	"github.com/duacyd/analitica/internal/pkg/store"
	"github.com/duacyd/analitica/internal/pkg/store/xpgx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	viper.SetDefault(constants.ViperServerAddr, ":8080")
	viper.SetDefault(constants.ViperCORSOrigin, "http://localhost:3000")
	viper.SetDefault(constants.ViperAllowUnscoped, false)
	viper.SetDefault(constants.ViperLoadValuesPara, 4)
	viper.SetEnvPrefix("analitica")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDBDSN))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	svc, err := api.NewAPIService(store.NewStore(pool))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperServerAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}
