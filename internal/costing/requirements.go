package costing

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/domain"
)

// Requirement is the projected material need of a work order for one
// material, compared against on-hand stock. Shortfall is never negative.
type Requirement struct {
	MaterialCode string          `json:"material_code"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	OnHandQty    decimal.Decimal `json:"on_hand_qty"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// MaterialRequirements computes, per BOM line of the work order's SKU:
//
//	required = consumption x orderQty x (1 + wastagePct/100)
//	shortfall = max(0, required - onHand)
//
// A missing inventory record means zero on hand. A SKU with no BOM lines
// yields an empty result, which the caller must present as "no
// requirements defined" rather than "fully stocked". This is a projection:
// it never decrements stock.
func MaterialRequirements(
	orderQty decimal.Decimal,
	lines []domain.BOMLine,
	materialsByCode map[string]domain.Material,
	inventoryByCode map[string]domain.InventoryItem,
) ([]Requirement, error) {
	if !orderQty.IsPositive() {
		return nil, fmt.Errorf("%w: work order quantity must be > 0, got %s", ErrInvalidInput, orderQty)
	}

	requirements := make([]Requirement, 0, len(lines))
	for _, line := range lines {
		mat, ok := materialsByCode[line.MaterialCode]
		if !ok {
			log.Warn().
				Str("material_code", line.MaterialCode).
				Int64("bom_line_id", line.ID).
				Msg("BOM line references unknown material, excluded from requirements")
			continue
		}

		required := line.Consumption.Mul(orderQty).Mul(wastageFactor(line.WastagePct))

		onHand := decimal.Zero
		if inv, ok := inventoryByCode[line.MaterialCode]; ok {
			onHand = inv.QuantityOnHand
		}

		shortfall := required.Sub(onHand)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}

		requirements = append(requirements, Requirement{
			MaterialCode: line.MaterialCode,
			Description:  mat.Description,
			Unit:         mat.Unit,
			RequiredQty:  required,
			OnHandQty:    onHand,
			Shortfall:    shortfall,
		})
	}

	// Stable output regardless of BOM line order.
	sort.Slice(requirements, func(i, j int) bool {
		return requirements[i].MaterialCode < requirements[j].MaterialCode
	})

	return requirements, nil
}
