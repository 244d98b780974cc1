// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbocloud/ai-inventory-sub000/internal/api"
	"github.com/tbocloud/ai-inventory-sub000/internal/config"
	"github.com/tbocloud/ai-inventory-sub000/internal/planner"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository/memory"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository/postgres"
	"github.com/tbocloud/ai-inventory-sub000/internal/service"
	"github.com/tbocloud/ai-inventory-sub000/internal/session"
	"github.com/tbocloud/ai-inventory-sub000/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	var (
		forecasts repository.ForecastRepository
		suppliers repository.SupplierRepository
		orders    repository.OrderRepository
	)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("database unavailable, running with in-memory repositories")
		forecasts = memory.NewForecastRepository()
		suppliers = memory.NewSupplierRepository()
		orders = memory.NewOrderRepository()
	} else {
		defer db.Close()
		forecasts = postgres.NewForecastRepository(db)
		suppliers = postgres.NewSupplierRepository(db)
		orders = postgres.NewOrderRepository(db)
	}

	sessions, err := session.New(cfg.Session)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize session store")
	}

	policy := planner.FromConfig(cfg.Planning)
	svc := service.NewProcurementService(forecasts, suppliers, orders, sessions, policy)

	router := api.NewRouter(svc, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
