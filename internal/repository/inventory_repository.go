// internal/repository/inventory_repository.go
package repository

import (
	"context"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type InventoryRepository interface {
	GetAll(ctx context.Context) ([]domain.InventoryItem, error)
	GetByMaterialCode(ctx context.Context, code string) (*domain.InventoryItem, error)
	Upsert(ctx context.Context, item *domain.InventoryItem) error
}

type WorkOrderRepository interface {
	GetAll(ctx context.Context) ([]domain.WorkOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error)
	Create(ctx context.Context, wo *domain.WorkOrder) error
	UpdateStatus(ctx context.Context, number string, status domain.WOStatus) error
}
