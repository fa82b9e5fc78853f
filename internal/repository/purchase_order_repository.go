// internal/repository/purchase_order_repository.go
package repository

import (
	"context"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type PurchaseOrderRepository interface {
	GetAll(ctx context.Context) ([]domain.PurchaseOrder, error)
	// GetByNumber loads the order together with its items.
	GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error)
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	UpdateStatus(ctx context.Context, number string, status domain.POStatus) error
	// DeleteWithItems removes the order and all of its items in a single
	// transaction; a partial delete must never leave orphaned items behind.
	DeleteWithItems(ctx context.Context, number string) error

	GetAllItems(ctx context.Context) ([]domain.PurchaseOrderItem, error)
	GetItems(ctx context.Context, number string) ([]domain.PurchaseOrderItem, error)
	AddItem(ctx context.Context, item *domain.PurchaseOrderItem) error
	RemoveItem(ctx context.Context, number string, itemID int64) error
}

type CostingRunRepository interface {
	Create(ctx context.Context, run *domain.CostingRun) error
	GetBySKU(ctx context.Context, skuCode string, limit int) ([]domain.CostingRun, error)
}
