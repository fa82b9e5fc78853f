// internal/api/handlers/planning_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/stitcherp/internal/service"
)

type PlanningHandler struct {
	planningService *service.PlanningService
}

func NewPlanningHandler(planningService *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// GetRequirements returns required quantities and shortfalls for a work order
func (h *PlanningHandler) GetRequirements(c *gin.Context) {
	res, err := h.planningService.RequirementsForWorkOrder(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetLowStock returns inventory items below their minimum stock level
func (h *PlanningHandler) GetLowStock(c *gin.Context) {
	low, err := h.planningService.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, low)
}
