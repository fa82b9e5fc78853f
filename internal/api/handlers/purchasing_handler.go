// internal/api/handlers/purchasing_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stitchworks/stitcherp/internal/domain"
	"github.com/stitchworks/stitcherp/internal/service"
)

type PurchasingHandler struct {
	purchasingService *service.PurchasingService
}

func NewPurchasingHandler(purchasingService *service.PurchasingService) *PurchasingHandler {
	return &PurchasingHandler{purchasingService: purchasingService}
}

// ListPurchaseOrders returns all purchase orders
func (h *PurchasingHandler) ListPurchaseOrders(c *gin.Context) {
	orders, err := h.purchasingService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetPurchaseOrder returns one purchase order with its items and total
func (h *PurchasingHandler) GetPurchaseOrder(c *gin.Context) {
	number := c.Param("number")

	po, err := h.purchasingService.Get(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}

	total, err := h.purchasingService.TotalFor(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": po,
		"total": total,
	})
}

// GetTotals returns the value of every purchase order keyed by number
func (h *PurchasingHandler) GetTotals(c *gin.Context) {
	totals, err := h.purchasingService.Totals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// CreatePurchaseOrder opens a new draft order
func (h *PurchasingHandler) CreatePurchaseOrder(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	po, err := h.purchasingService.CreateDraft(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, po)
}

// AddItem appends a line item to a draft order
func (h *PurchasingHandler) AddItem(c *gin.Context) {
	var req service.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.purchasingService.AddItem(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// RemoveItem deletes a line item from a draft order
func (h *PurchasingHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.purchasingService.RemoveItem(c.Request.Context(), c.Param("number"), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransitionStatus moves an order to a new status
func (h *PurchasingHandler) TransitionStatus(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	to, err := domain.ParsePOStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po, err := h.purchasingService.Transition(c.Request.Context(), c.Param("number"), to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, po)
}

// DeletePurchaseOrder removes an order together with its items
func (h *PurchasingHandler) DeletePurchaseOrder(c *gin.Context) {
	if err := h.purchasingService.Delete(c.Request.Context(), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
