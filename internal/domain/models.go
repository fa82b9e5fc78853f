// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Style represents a garment style (the parent of its sellable SKUs)
type Style struct {
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Season      string    `json:"season" db:"season"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SKU represents a sellable variant (color/size) of a style
type SKU struct {
	Code         string          `json:"code" db:"code"`
	StyleCode    string          `json:"style_code" db:"style_code"`
	Color        string          `json:"color" db:"color"`
	Size         string          `json:"size" db:"size"`
	SellingPrice decimal.Decimal `json:"selling_price" db:"selling_price"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// Material represents a raw material referenced by BOM lines, inventory and PO lines
type Material struct {
	Code        string          `json:"code" db:"code"`
	Description string          `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	Unit        string          `json:"unit" db:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" db:"cost_per_unit"`
	MinOrderQty decimal.Decimal `json:"min_order_qty" db:"min_order_qty"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// BOMLine is one material requirement of a SKU's bill of materials.
// (sku_code, material_code) is unique within a SKU's BOM.
type BOMLine struct {
	ID           int64           `json:"id" db:"id"`
	SKUCode      string          `json:"sku_code" db:"sku_code"`
	StyleCode    string          `json:"style_code" db:"style_code"`
	MaterialCode string          `json:"material_code" db:"material_code"`
	Consumption  decimal.Decimal `json:"consumption" db:"consumption"` // per garment
	WastagePct   decimal.Decimal `json:"wastage_pct" db:"wastage_pct"` // 5.0 means +5%
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// InventoryItem tracks on-hand stock for a material (one record per material)
type InventoryItem struct {
	MaterialCode   string          `json:"material_code" db:"material_code"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand" db:"quantity_on_hand"`
	MinStockLevel  decimal.Decimal `json:"min_stock_level" db:"min_stock_level"`
	Location       string          `json:"location" db:"location"`
	GRNRef         string          `json:"grn_ref" db:"grn_ref"`
	PORef          string          `json:"po_ref" db:"po_ref"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Supplier represents a material supplier
type Supplier struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Contact      string    `json:"contact" db:"contact"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	LeadTimeDays int       `json:"lead_time_days" db:"lead_time_days"`
	Rating       int       `json:"rating" db:"rating"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// WorkOrder drives material requirement computation for a SKU
type WorkOrder struct {
	Number    string          `json:"number" db:"number"`
	SKUCode   string          `json:"sku_code" db:"sku_code"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	StartDate *time.Time      `json:"start_date" db:"start_date"`
	EndDate   *time.Time      `json:"end_date" db:"end_date"`
	Status    WOStatus        `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseOrder owns zero or more PurchaseOrderItem rows.
// Items are mutable only while Status is Draft.
type PurchaseOrder struct {
	Number       string     `json:"number" db:"number"`
	SupplierID   int64      `json:"supplier_id" db:"supplier_id"`
	OrderDate    *time.Time `json:"order_date" db:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date" db:"delivery_date"`
	Status       POStatus   `json:"status" db:"status"`
	Notes        string     `json:"notes" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	Items []PurchaseOrderItem `json:"items,omitempty" db:"-"`
}

// PurchaseOrderItem is a single line of a purchase order
type PurchaseOrderItem struct {
	ID           int64           `json:"id" db:"id"`
	PONumber     string          `json:"po_number" db:"po_number"`
	MaterialCode string          `json:"material_code" db:"material_code"`
	Quantity     decimal.Decimal `json:"quantity" db:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// CostingRun is the audit record of one BOM cost rollup
type CostingRun struct {
	ID           string          `json:"id" db:"id"`
	SKUCode      string          `json:"sku_code" db:"sku_code"`
	TotalCost    decimal.Decimal `json:"total_cost" db:"total_cost"`
	LineCount    int             `json:"line_count" db:"line_count"`
	SkippedLines int             `json:"skipped_lines" db:"skipped_lines"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// MaterialsByCode builds the lookup map the calculators consume.
func MaterialsByCode(materials []Material) map[string]Material {
	byCode := make(map[string]Material, len(materials))
	for _, m := range materials {
		byCode[m.Code] = m
	}
	return byCode
}

// InventoryByCode builds the on-hand lookup map keyed by material code.
func InventoryByCode(items []InventoryItem) map[string]InventoryItem {
	byCode := make(map[string]InventoryItem, len(items))
	for _, it := range items {
		byCode[it.MaterialCode] = it
	}
	return byCode
}
