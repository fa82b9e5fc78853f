// internal/service/planning_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/costing"
	"github.com/stitchworks/stitcherp/internal/domain"
	"github.com/stitchworks/stitcherp/internal/repository"
)

// PlanningService projects material demand for work orders against
// on-hand inventory. It never mutates stock.
type PlanningService struct {
	woRepo        repository.WorkOrderRepository
	bomRepo       repository.BOMRepository
	materialRepo  repository.MaterialRepository
	inventoryRepo repository.InventoryRepository
}

func NewPlanningService(
	woRepo repository.WorkOrderRepository,
	bomRepo repository.BOMRepository,
	materialRepo repository.MaterialRepository,
	inventoryRepo repository.InventoryRepository,
) *PlanningService {
	return &PlanningService{
		woRepo:        woRepo,
		bomRepo:       bomRepo,
		materialRepo:  materialRepo,
		inventoryRepo: inventoryRepo,
	}
}

// WorkOrderRequirements is the projection result for one work order. When
// the SKU has no BOM lines, Requirements is empty and NoBOMDefined is set
// so the caller can tell "nothing required" apart from "fully stocked".
type WorkOrderRequirements struct {
	WorkOrderNumber string                `json:"work_order_number"`
	SKUCode         string                `json:"sku_code"`
	OrderQuantity   decimal.Decimal       `json:"order_quantity"`
	Requirements    []costing.Requirement `json:"requirements"`
	NoBOMDefined    bool                  `json:"no_bom_defined"`
}

// RequirementsForWorkOrder computes required quantity and shortfall per
// material of the work order's SKU.
func (s *PlanningService) RequirementsForWorkOrder(ctx context.Context, number string) (*WorkOrderRequirements, error) {
	wo, err := s.woRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("work order %s: %w", number, err)
	}
	if !wo.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: work order %s has non-positive quantity %s",
			costing.ErrInvalidInput, number, wo.Quantity)
	}

	lines, err := s.bomRepo.GetBySKU(ctx, wo.SKUCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM for %s: %w", wo.SKUCode, err)
	}

	materials, err := s.materialRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials snapshot: %w", err)
	}

	inventory, err := s.inventoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	requirements, err := costing.MaterialRequirements(
		wo.Quantity, lines,
		domain.MaterialsByCode(materials),
		domain.InventoryByCode(inventory),
	)
	if err != nil {
		return nil, err
	}

	return &WorkOrderRequirements{
		WorkOrderNumber: wo.Number,
		SKUCode:         wo.SKUCode,
		OrderQuantity:   wo.Quantity,
		Requirements:    requirements,
		NoBOMDefined:    len(lines) == 0,
	}, nil
}

// LowStockItem flags a material whose on-hand quantity fell below its
// minimum stock level.
type LowStockItem struct {
	MaterialCode   string          `json:"material_code"`
	Description    string          `json:"description"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level"`
	MinOrderQty    decimal.Decimal `json:"min_order_qty"`
}

// LowStock returns every inventory item below its minimum stock level.
func (s *PlanningService) LowStock(ctx context.Context) ([]LowStockItem, error) {
	inventory, err := s.inventoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	materials, err := s.materialRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials snapshot: %w", err)
	}
	byCode := domain.MaterialsByCode(materials)

	low := make([]LowStockItem, 0)
	for _, item := range inventory {
		if item.QuantityOnHand.GreaterThanOrEqual(item.MinStockLevel) {
			continue
		}

		entry := LowStockItem{
			MaterialCode:   item.MaterialCode,
			QuantityOnHand: item.QuantityOnHand,
			MinStockLevel:  item.MinStockLevel,
		}
		if mat, ok := byCode[item.MaterialCode]; ok {
			entry.Description = mat.Description
			entry.MinOrderQty = mat.MinOrderQty
		}
		low = append(low, entry)
	}

	return low, nil
}
