// internal/api/handlers/export_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/stitcherp/internal/service"
)

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCostSheet builds a cost-sheet workbook for a style and uploads it
// to object storage
func (h *ExportHandler) ExportCostSheet(c *gin.Context) {
	result, err := h.exportService.ExportStyleCostSheet(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
