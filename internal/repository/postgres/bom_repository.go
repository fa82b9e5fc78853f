// internal/repository/postgres/bom_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/stitchworks/stitcherp/internal/domain"
)

type bomRepository struct {
	db *DB
}

func NewBOMRepository(db *DB) *bomRepository {
	return &bomRepository{db: db}
}

func (r *bomRepository) GetBySKU(ctx context.Context, skuCode string) ([]domain.BOMLine, error) {
	query := `
		SELECT id, sku_code, style_code, material_code, consumption, wastage_pct, created_at, updated_at
		FROM bom_lines
		WHERE sku_code = $1
		ORDER BY material_code
	`

	var lines []domain.BOMLine
	if err := r.db.SelectContext(ctx, &lines, query, skuCode); err != nil {
		return nil, fmt.Errorf("failed to get BOM lines for sku %s: %w", skuCode, err)
	}

	return lines, nil
}

func (r *bomRepository) GetByStyle(ctx context.Context, styleCode string) ([]domain.BOMLine, error) {
	query := `
		SELECT id, sku_code, style_code, material_code, consumption, wastage_pct, created_at, updated_at
		FROM bom_lines
		WHERE style_code = $1
		ORDER BY sku_code, material_code
	`

	var lines []domain.BOMLine
	if err := r.db.SelectContext(ctx, &lines, query, styleCode); err != nil {
		return nil, fmt.Errorf("failed to get BOM lines for style %s: %w", styleCode, err)
	}

	return lines, nil
}

func (r *bomRepository) Insert(ctx context.Context, line *domain.BOMLine) error {
	// (sku_code, material_code) carries a unique constraint; a duplicate
	// line updates the existing one instead of failing.
	query := `
		INSERT INTO bom_lines (sku_code, style_code, material_code, consumption, wastage_pct, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (sku_code, material_code)
		DO UPDATE SET
			consumption = EXCLUDED.consumption,
			wastage_pct = EXCLUDED.wastage_pct,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		line.SKUCode, line.StyleCode, line.MaterialCode,
		line.Consumption, line.WastagePct).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to insert BOM line for sku %s: %w", line.SKUCode, err)
	}

	return nil
}

func (r *bomRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bom_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete BOM line %d: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}
