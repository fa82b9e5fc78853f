// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"

	"github.com/stitchworks/stitcherp/internal/api"
	"github.com/stitchworks/stitcherp/internal/cache"
	"github.com/stitchworks/stitcherp/internal/config"
	"github.com/stitchworks/stitcherp/internal/repository/postgres"
	"github.com/stitchworks/stitcherp/internal/service"
	"github.com/stitchworks/stitcherp/internal/storage"
	"github.com/stitchworks/stitcherp/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.Component("server")

	if err := runMigrations(&cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	materialRepo := postgres.NewMaterialRepository(db)
	styleRepo := postgres.NewStyleRepository(db)
	skuRepo := postgres.NewSKURepository(db)
	bomRepo := postgres.NewBOMRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	woRepo := postgres.NewWorkOrderRepository(db)
	poRepo := postgres.NewPurchaseOrderRepository(db)
	runRepo := postgres.NewCostingRunRepository(db)

	costCache, err := cache.NewBOMCostCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Costing cache unavailable, running without it")
		costCache = cache.NewNoopBOMCostCache()
	}

	costingService := service.NewCostingService(skuRepo, bomRepo, materialRepo, runRepo, costCache, cfg.App.CostingRunLimit)
	planningService := service.NewPlanningService(woRepo, bomRepo, materialRepo, inventoryRepo)
	purchasingService := service.NewPurchasingService(poRepo, supplierRepo, materialRepo)

	var exportService *service.ExportService
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinioStorage(cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("Object storage unavailable, cost-sheet export disabled")
		} else {
			exportService = service.NewExportService(styleRepo, skuRepo, costingService, store, cfg.App.DefaultCurrency)
		}
	}

	router := api.NewRouter(&api.Services{
		CostingService:    costingService,
		PlanningService:   planningService,
		PurchasingService: purchasingService,
		ExportService:     exportService,
	}, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ExposeMetrics:  cfg.Server.ExposeMetrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

func runMigrations(cfg *config.DatabaseConfig) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	return goose.Up(db, "migrations")
}
