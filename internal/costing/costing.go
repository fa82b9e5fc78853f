// Package costing implements the derived-data calculations of the ERP:
// BOM line costs and cost rollups, work order material requirements, and
// purchase order totals. Every function is a pure computation over an
// already-fetched snapshot of rows; nothing here touches the database.
package costing

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/domain"
)

// ErrInvalidInput is returned when a calculator precondition fails
// (non-positive quantity, negative cost or wastage).
var ErrInvalidInput = errors.New("invalid calculator input")

var oneHundred = decimal.NewFromInt(100)

// wastageFactor returns 1 + pct/100.
func wastageFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(oneHundred))
}

// LineCost computes the cost contribution of a single BOM line:
// consumption x costPerUnit x (1 + wastagePct/100).
func LineCost(consumption, wastagePct, costPerUnit decimal.Decimal) (decimal.Decimal, error) {
	if !consumption.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: consumption per garment must be > 0, got %s", ErrInvalidInput, consumption)
	}
	if wastagePct.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: wastage percentage must be >= 0, got %s", ErrInvalidInput, wastagePct)
	}
	if costPerUnit.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cost per unit must be >= 0, got %s", ErrInvalidInput, costPerUnit)
	}

	return consumption.Mul(costPerUnit).Mul(wastageFactor(wastagePct)), nil
}

// LineCostDetail is the per-line output of a BOM rollup.
type LineCostDetail struct {
	MaterialCode string          `json:"material_code"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	Consumption  decimal.Decimal `json:"consumption"`
	WastagePct   decimal.Decimal `json:"wastage_pct"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	LineCost     decimal.Decimal `json:"line_cost"`
}

// BOMCostSummary is the result of rolling up one SKU's bill of materials.
type BOMCostSummary struct {
	SKUCode      string           `json:"sku_code"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	Lines        []LineCostDetail `json:"lines"`
	SkippedLines int              `json:"skipped_lines"`
}

// TotalBOMCost sums line costs over all BOM lines for the given materials
// snapshot. A line whose material code is missing from the snapshot
// contributes zero and is counted in SkippedLines; the miss is logged as a
// data-integrity warning rather than failing the whole rollup. Summation
// order never affects the total; Lines follow the input order.
func TotalBOMCost(skuCode string, lines []domain.BOMLine, materialsByCode map[string]domain.Material) BOMCostSummary {
	summary := BOMCostSummary{SKUCode: skuCode, TotalCost: decimal.Zero}

	for _, line := range lines {
		mat, ok := materialsByCode[line.MaterialCode]
		if !ok {
			summary.SkippedLines++
			log.Warn().
				Str("sku_code", skuCode).
				Str("material_code", line.MaterialCode).
				Int64("bom_line_id", line.ID).
				Msg("BOM line references unknown material, excluded from cost rollup")
			continue
		}

		cost, err := LineCost(line.Consumption, line.WastagePct, mat.CostPerUnit)
		if err != nil {
			summary.SkippedLines++
			log.Warn().
				Err(err).
				Str("sku_code", skuCode).
				Str("material_code", line.MaterialCode).
				Msg("BOM line has invalid values, excluded from cost rollup")
			continue
		}

		summary.TotalCost = summary.TotalCost.Add(cost)
		summary.Lines = append(summary.Lines, LineCostDetail{
			MaterialCode: line.MaterialCode,
			Description:  mat.Description,
			Unit:         mat.Unit,
			Consumption:  line.Consumption,
			WastagePct:   line.WastagePct,
			CostPerUnit:  mat.CostPerUnit,
			LineCost:     cost,
		})
	}

	return summary
}
