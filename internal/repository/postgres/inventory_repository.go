// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `
		SELECT material_code, quantity_on_hand, min_stock_level, location, grn_ref, po_ref, updated_at
		FROM inventory_items
		ORDER BY material_code
	`

	var items []domain.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) GetByMaterialCode(ctx context.Context, code string) (*domain.InventoryItem, error) {
	query := `
		SELECT material_code, quantity_on_hand, min_stock_level, location, grn_ref, po_ref, updated_at
		FROM inventory_items
		WHERE material_code = $1
	`

	var item domain.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inventory for %s: %w", code, err)
	}

	return &item, nil
}

func (r *inventoryRepository) Upsert(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (material_code, quantity_on_hand, min_stock_level, location, grn_ref, po_ref, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (material_code)
		DO UPDATE SET
			quantity_on_hand = EXCLUDED.quantity_on_hand,
			min_stock_level = EXCLUDED.min_stock_level,
			location = EXCLUDED.location,
			grn_ref = EXCLUDED.grn_ref,
			po_ref = EXCLUDED.po_ref,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		item.MaterialCode, item.QuantityOnHand, item.MinStockLevel,
		item.Location, item.GRNRef, item.PORef)
	if err != nil {
		return fmt.Errorf("failed to upsert inventory for %s: %w", item.MaterialCode, err)
	}

	return nil
}

type workOrderRepository struct {
	db *DB
}

func NewWorkOrderRepository(db *DB) *workOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) GetAll(ctx context.Context) ([]domain.WorkOrder, error) {
	query := `
		SELECT number, sku_code, quantity, start_date, end_date, status, created_at, updated_at
		FROM work_orders
		ORDER BY number
	`

	var orders []domain.WorkOrder
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to get work orders: %w", err)
	}

	return orders, nil
}

func (r *workOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	query := `
		SELECT number, sku_code, quantity, start_date, end_date, status, created_at, updated_at
		FROM work_orders
		WHERE number = $1
	`

	var wo domain.WorkOrder
	if err := r.db.GetContext(ctx, &wo, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get work order %s: %w", number, err)
	}

	return &wo, nil
}

func (r *workOrderRepository) Create(ctx context.Context, wo *domain.WorkOrder) error {
	query := `
		INSERT INTO work_orders (number, sku_code, quantity, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		wo.Number, wo.SKUCode, wo.Quantity, wo.StartDate, wo.EndDate, wo.Status)
	if err != nil {
		return fmt.Errorf("failed to create work order %s: %w", wo.Number, err)
	}

	return nil
}

func (r *workOrderRepository) UpdateStatus(ctx context.Context, number string, status domain.WOStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET status = $2, updated_at = NOW() WHERE number = $1`,
		number, status)
	if err != nil {
		return fmt.Errorf("failed to update work order %s: %w", number, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
