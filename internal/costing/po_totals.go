package costing

import (
	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/domain"
)

// POTotals groups purchase order items by PO number and sums
// quantity x unit cost per group. Orders with no items are absent from the
// result; callers treat absence as zero.
func POTotals(items []domain.PurchaseOrderItem) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		totals[item.PONumber] = totals[item.PONumber].Add(item.Quantity.Mul(item.UnitCost))
	}
	return totals
}

// POTotal sums quantity x unit cost over one order's items.
func POTotal(items []domain.PurchaseOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.UnitCost))
	}
	return total
}
