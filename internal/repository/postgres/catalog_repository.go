// internal/repository/postgres/catalog_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type materialRepository struct {
	db *DB
}

func NewMaterialRepository(db *DB) *materialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) GetAll(ctx context.Context) ([]domain.Material, error) {
	query := `
		SELECT code, description, category, unit, cost_per_unit, min_order_qty, created_at, updated_at
		FROM materials
		ORDER BY code
	`

	var materials []domain.Material
	if err := r.db.SelectContext(ctx, &materials, query); err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}

	return materials, nil
}

func (r *materialRepository) GetByCode(ctx context.Context, code string) (*domain.Material, error) {
	query := `
		SELECT code, description, category, unit, cost_per_unit, min_order_qty, created_at, updated_at
		FROM materials
		WHERE code = $1
	`

	var material domain.Material
	if err := r.db.GetContext(ctx, &material, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material %s: %w", code, err)
	}

	return &material, nil
}

func (r *materialRepository) Upsert(ctx context.Context, material *domain.Material) error {
	query := `
		INSERT INTO materials (code, description, category, unit, cost_per_unit, min_order_qty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (code)
		DO UPDATE SET
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			unit = EXCLUDED.unit,
			cost_per_unit = EXCLUDED.cost_per_unit,
			min_order_qty = EXCLUDED.min_order_qty,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		material.Code, material.Description, material.Category,
		material.Unit, material.CostPerUnit, material.MinOrderQty)
	if err != nil {
		return fmt.Errorf("failed to upsert material %s: %w", material.Code, err)
	}

	return nil
}

func (r *materialRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete material %s: %w", code, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type styleRepository struct {
	db *DB
}

func NewStyleRepository(db *DB) *styleRepository {
	return &styleRepository{db: db}
}

func (r *styleRepository) GetAll(ctx context.Context) ([]domain.Style, error) {
	query := `
		SELECT code, name, category, season, description, created_at, updated_at
		FROM styles
		ORDER BY code
	`

	var styles []domain.Style
	if err := r.db.SelectContext(ctx, &styles, query); err != nil {
		return nil, fmt.Errorf("failed to get styles: %w", err)
	}

	return styles, nil
}

func (r *styleRepository) GetByCode(ctx context.Context, code string) (*domain.Style, error) {
	query := `
		SELECT code, name, category, season, description, created_at, updated_at
		FROM styles
		WHERE code = $1
	`

	var style domain.Style
	if err := r.db.GetContext(ctx, &style, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get style %s: %w", code, err)
	}

	return &style, nil
}

func (r *styleRepository) Upsert(ctx context.Context, style *domain.Style) error {
	query := `
		INSERT INTO styles (code, name, category, season, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (code)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			season = EXCLUDED.season,
			description = EXCLUDED.description,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		style.Code, style.Name, style.Category, style.Season, style.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert style %s: %w", style.Code, err)
	}

	return nil
}

type skuRepository struct {
	db *DB
}

func NewSKURepository(db *DB) *skuRepository {
	return &skuRepository{db: db}
}

func (r *skuRepository) GetByCode(ctx context.Context, code string) (*domain.SKU, error) {
	query := `
		SELECT code, style_code, color, size, selling_price, created_at, updated_at
		FROM skus
		WHERE code = $1
	`

	var sku domain.SKU
	if err := r.db.GetContext(ctx, &sku, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sku %s: %w", code, err)
	}

	return &sku, nil
}

func (r *skuRepository) GetByStyle(ctx context.Context, styleCode string) ([]domain.SKU, error) {
	query := `
		SELECT code, style_code, color, size, selling_price, created_at, updated_at
		FROM skus
		WHERE style_code = $1
		ORDER BY code
	`

	var skus []domain.SKU
	if err := r.db.SelectContext(ctx, &skus, query, styleCode); err != nil {
		return nil, fmt.Errorf("failed to get skus for style %s: %w", styleCode, err)
	}

	return skus, nil
}

func (r *skuRepository) Upsert(ctx context.Context, sku *domain.SKU) error {
	query := `
		INSERT INTO skus (code, style_code, color, size, selling_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (code)
		DO UPDATE SET
			style_code = EXCLUDED.style_code,
			color = EXCLUDED.color,
			size = EXCLUDED.size,
			selling_price = EXCLUDED.selling_price,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		sku.Code, sku.StyleCode, sku.Color, sku.Size, sku.SellingPrice)
	if err != nil {
		return fmt.Errorf("failed to upsert sku %s: %w", sku.Code, err)
	}

	return nil
}

type supplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *supplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) GetAll(ctx context.Context) ([]domain.Supplier, error) {
	query := `
		SELECT id, name, contact, email, phone, lead_time_days, rating, created_at, updated_at
		FROM suppliers
		ORDER BY name
	`

	var suppliers []domain.Supplier
	if err := r.db.SelectContext(ctx, &suppliers, query); err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}

	return suppliers, nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	query := `
		SELECT id, name, contact, email, phone, lead_time_days, rating, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`

	var supplier domain.Supplier
	if err := r.db.GetContext(ctx, &supplier, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier %d: %w", id, err)
	}

	return &supplier, nil
}

func (r *supplierRepository) Upsert(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.ID == 0 {
		query := `
			INSERT INTO suppliers (name, contact, email, phone, lead_time_days, rating, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id
		`
		return r.db.QueryRowContext(ctx, query,
			supplier.Name, supplier.Contact, supplier.Email,
			supplier.Phone, supplier.LeadTimeDays, supplier.Rating).Scan(&supplier.ID)
	}

	query := `
		UPDATE suppliers
		SET name = $2, contact = $3, email = $4, phone = $5, lead_time_days = $6, rating = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Email,
		supplier.Phone, supplier.LeadTimeDays, supplier.Rating)
	if err != nil {
		return fmt.Errorf("failed to update supplier %d: %w", supplier.ID, err)
	}

	return nil
}
