// internal/repository/catalog_repository.go
package repository

import (
	"context"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type MaterialRepository interface {
	GetAll(ctx context.Context) ([]domain.Material, error)
	GetByCode(ctx context.Context, code string) (*domain.Material, error)
	Upsert(ctx context.Context, material *domain.Material) error
	Delete(ctx context.Context, code string) error
}

type StyleRepository interface {
	GetAll(ctx context.Context) ([]domain.Style, error)
	GetByCode(ctx context.Context, code string) (*domain.Style, error)
	Upsert(ctx context.Context, style *domain.Style) error
}

type SKURepository interface {
	GetByCode(ctx context.Context, code string) (*domain.SKU, error)
	GetByStyle(ctx context.Context, styleCode string) ([]domain.SKU, error)
	Upsert(ctx context.Context, sku *domain.SKU) error
}

type BOMRepository interface {
	GetBySKU(ctx context.Context, skuCode string) ([]domain.BOMLine, error)
	GetByStyle(ctx context.Context, styleCode string) ([]domain.BOMLine, error)
	Insert(ctx context.Context, line *domain.BOMLine) error
	Delete(ctx context.Context, id int64) error
}

type SupplierRepository interface {
	GetAll(ctx context.Context) ([]domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	Upsert(ctx context.Context, supplier *domain.Supplier) error
}
