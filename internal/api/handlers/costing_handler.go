// internal/api/handlers/costing_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/stitcherp/internal/service"
)

type CostingHandler struct {
	costingService *service.CostingService
}

func NewCostingHandler(costingService *service.CostingService) *CostingHandler {
	return &CostingHandler{costingService: costingService}
}

// GetSKUCost returns the BOM cost rollup for a SKU
func (h *CostingHandler) GetSKUCost(c *gin.Context) {
	summary, err := h.costingService.CostSKU(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sku_code":      summary.SKUCode,
		"total_cost":    summary.TotalCost,
		"line_count":    len(summary.Lines),
		"skipped_lines": summary.SkippedLines,
	})
}

// GetSKUCostLines returns the per-line cost breakdown for a SKU
func (h *CostingHandler) GetSKUCostLines(c *gin.Context) {
	summary, err := h.costingService.CostSKU(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sku_code":   summary.SKUCode,
		"total_cost": summary.TotalCost,
		"lines":      summary.Lines,
	})
}

// GetCostingHistory returns recent costing runs for a SKU. Without a limit
// query param the service's configured run limit applies.
func (h *CostingHandler) GetCostingHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	runs, err := h.costingService.History(c.Request.Context(), c.Param("code"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, runs)
}
