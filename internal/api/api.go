// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stitchworks/stitcherp/internal/api/handlers"
	"github.com/stitchworks/stitcherp/internal/api/middleware"
	"github.com/stitchworks/stitcherp/internal/service"
)

type Services struct {
	CostingService    *service.CostingService
	PlanningService   *service.PlanningService
	PurchasingService *service.PurchasingService
	ExportService     *service.ExportService
}

type Options struct {
	AllowedOrigins []string
	ExposeMetrics  bool
}

func NewRouter(services *Services, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.ExposeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.CostingService != nil {
			costingHandler := handlers.NewCostingHandler(services.CostingService)
			skuGroup := apiGroup.Group("/skus")
			{
				skuGroup.GET("/:code/cost", costingHandler.GetSKUCost)
				skuGroup.GET("/:code/cost/lines", costingHandler.GetSKUCostLines)
				skuGroup.GET("/:code/cost/history", costingHandler.GetCostingHistory)
			}
		}

		if services.PlanningService != nil {
			planningHandler := handlers.NewPlanningHandler(services.PlanningService)
			apiGroup.GET("/work-orders/:number/requirements", planningHandler.GetRequirements)
			apiGroup.GET("/inventory/low-stock", planningHandler.GetLowStock)
		}

		if services.PurchasingService != nil {
			purchasingHandler := handlers.NewPurchasingHandler(services.PurchasingService)
			poGroup := apiGroup.Group("/purchase-orders")
			{
				poGroup.GET("", purchasingHandler.ListPurchaseOrders)
				poGroup.GET("/totals", purchasingHandler.GetTotals)
				poGroup.GET("/:number", purchasingHandler.GetPurchaseOrder)
				poGroup.POST("", purchasingHandler.CreatePurchaseOrder)
				poGroup.POST("/:number/items", purchasingHandler.AddItem)
				poGroup.DELETE("/:number/items/:id", purchasingHandler.RemoveItem)
				poGroup.POST("/:number/status", purchasingHandler.TransitionStatus)
				poGroup.DELETE("/:number", purchasingHandler.DeletePurchaseOrder)
			}
		}

		if services.ExportService != nil {
			exportHandler := handlers.NewExportHandler(services.ExportService)
			apiGroup.POST("/styles/:code/cost-sheet", exportHandler.ExportCostSheet)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
