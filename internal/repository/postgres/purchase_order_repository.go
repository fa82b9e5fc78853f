// internal/repository/postgres/purchase_order_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/stitchworks/stitcherp/internal/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type purchaseOrderRepository struct {
	db *DB
}

func NewPurchaseOrderRepository(db *DB) *purchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) GetAll(ctx context.Context) ([]domain.PurchaseOrder, error) {
	query := `
		SELECT number, supplier_id, order_date, delivery_date, status, notes, created_at, updated_at
		FROM purchase_orders
		ORDER BY number
	`

	var orders []domain.PurchaseOrder
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("failed to get purchase orders: %w", err)
	}

	return orders, nil
}

func (r *purchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT number, supplier_id, order_date, delivery_date, status, notes, created_at, updated_at
		FROM purchase_orders
		WHERE number = $1
	`

	var po domain.PurchaseOrder
	if err := r.db.GetContext(ctx, &po, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase order %s: %w", number, err)
	}

	items, err := r.GetItems(ctx, number)
	if err != nil {
		return nil, err
	}
	po.Items = items

	return &po, nil
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO purchase_orders (number, supplier_id, order_date, delivery_date, status, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`
		if _, err := tx.ExecContext(ctx, query,
			po.Number, po.SupplierID, po.OrderDate, po.DeliveryDate, po.Status, po.Notes); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("purchase order %s: %w", po.Number, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("failed to create purchase order %s: %w", po.Number, err)
		}

		for i := range po.Items {
			if err := insertItem(ctx, tx, &po.Items[i]); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *purchaseOrderRepository) UpdateStatus(ctx context.Context, number string, status domain.POStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE purchase_orders SET status = $2, updated_at = NOW() WHERE number = $1`,
		number, status)
	if err != nil {
		return fmt.Errorf("failed to update purchase order %s: %w", number, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// DeleteWithItems removes the order and its items in one transaction so a
// failure can never leave orphaned items behind.
func (r *purchaseOrderRepository) DeleteWithItems(ctx context.Context, number string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM purchase_order_items WHERE po_number = $1`, number); err != nil {
			return fmt.Errorf("failed to delete items of purchase order %s: %w", number, err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM purchase_orders WHERE number = $1`, number)
		if err != nil {
			return fmt.Errorf("failed to delete purchase order %s: %w", number, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
}

func (r *purchaseOrderRepository) GetAllItems(ctx context.Context) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_number, material_code, quantity, unit_cost, created_at
		FROM purchase_order_items
		ORDER BY po_number, id
	`

	var items []domain.PurchaseOrderItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get purchase order items: %w", err)
	}

	return items, nil
}

func (r *purchaseOrderRepository) GetItems(ctx context.Context, number string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT id, po_number, material_code, quantity, unit_cost, created_at
		FROM purchase_order_items
		WHERE po_number = $1
		ORDER BY id
	`

	var items []domain.PurchaseOrderItem
	if err := r.db.SelectContext(ctx, &items, query, number); err != nil {
		return nil, fmt.Errorf("failed to get items of purchase order %s: %w", number, err)
	}

	return items, nil
}

func (r *purchaseOrderRepository) AddItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return insertItem(ctx, tx, item)
	})
}

func insertItem(ctx context.Context, tx *sqlx.Tx, item *domain.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (po_number, material_code, quantity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	err := tx.QueryRowContext(ctx, query,
		item.PONumber, item.MaterialCode, item.Quantity, item.UnitCost).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert item on purchase order %s: %w", item.PONumber, err)
	}

	return nil
}

func (r *purchaseOrderRepository) RemoveItem(ctx context.Context, number string, itemID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM purchase_order_items WHERE id = $1 AND po_number = $2`, itemID, number)
	if err != nil {
		return fmt.Errorf("failed to remove item %d from purchase order %s: %w", itemID, number, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type costingRunRepository struct {
	db *DB
}

func NewCostingRunRepository(db *DB) *costingRunRepository {
	return &costingRunRepository{db: db}
}

func (r *costingRunRepository) Create(ctx context.Context, run *domain.CostingRun) error {
	query := `
		INSERT INTO costing_runs (id, sku_code, total_cost, line_count, skipped_lines, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.SKUCode, run.TotalCost, run.LineCount, run.SkippedLines)
	if err != nil {
		return fmt.Errorf("failed to record costing run for %s: %w", run.SKUCode, err)
	}

	return nil
}

func (r *costingRunRepository) GetBySKU(ctx context.Context, skuCode string, limit int) ([]domain.CostingRun, error) {
	query := `
		SELECT id, sku_code, total_cost, line_count, skipped_lines, created_at
		FROM costing_runs
		WHERE sku_code = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var runs []domain.CostingRun
	if err := r.db.SelectContext(ctx, &runs, query, skuCode, limit); err != nil {
		return nil, fmt.Errorf("failed to get costing runs for %s: %w", skuCode, err)
	}

	return runs, nil
}
