// internal/service/costing_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/stitchworks/stitcherp/internal/cache"
	"github.com/stitchworks/stitcherp/internal/costing"
	"github.com/stitchworks/stitcherp/internal/domain"
	"github.com/stitchworks/stitcherp/internal/repository"
)

// CostingService runs BOM cost rollups over fresh snapshots and records an
// audit row for every rollup it computes.
const defaultHistoryLimit = 20

type CostingService struct {
	skuRepo      repository.SKURepository
	bomRepo      repository.BOMRepository
	materialRepo repository.MaterialRepository
	runRepo      repository.CostingRunRepository
	costCache    cache.BOMCostCache
	historyLimit int
}

func NewCostingService(
	skuRepo repository.SKURepository,
	bomRepo repository.BOMRepository,
	materialRepo repository.MaterialRepository,
	runRepo repository.CostingRunRepository,
	costCache cache.BOMCostCache,
	historyLimit int,
) *CostingService {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}

	return &CostingService{
		skuRepo:      skuRepo,
		bomRepo:      bomRepo,
		materialRepo: materialRepo,
		runRepo:      runRepo,
		costCache:    costCache,
		historyLimit: historyLimit,
	}
}

// CostSKU computes the total estimated cost of one SKU's bill of materials.
// Results are served from cache when available; a fresh computation is
// recorded as a costing run.
func (s *CostingService) CostSKU(ctx context.Context, skuCode string) (*costing.BOMCostSummary, error) {
	if cached, ok, err := s.costCache.Get(ctx, skuCode); err != nil {
		log.Warn().Err(err).Str("sku_code", skuCode).Msg("costing cache read failed, recomputing")
	} else if ok {
		return cached, nil
	}

	summary, err := s.computeCost(ctx, skuCode)
	if err != nil {
		return nil, err
	}

	run := &domain.CostingRun{
		ID:           uuid.New().String(),
		SKUCode:      skuCode,
		TotalCost:    summary.TotalCost,
		LineCount:    len(summary.Lines),
		SkippedLines: summary.SkippedLines,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		// The rollup itself succeeded; a missing audit row is not fatal.
		log.Error().Err(err).Str("sku_code", skuCode).Msg("failed to record costing run")
	}

	if err := s.costCache.Set(ctx, skuCode, summary); err != nil {
		log.Warn().Err(err).Str("sku_code", skuCode).Msg("costing cache write failed")
	}

	return summary, nil
}

func (s *CostingService) computeCost(ctx context.Context, skuCode string) (*costing.BOMCostSummary, error) {
	if _, err := s.skuRepo.GetByCode(ctx, skuCode); err != nil {
		return nil, fmt.Errorf("sku %s: %w", skuCode, err)
	}

	lines, err := s.bomRepo.GetBySKU(ctx, skuCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM for %s: %w", skuCode, err)
	}

	materials, err := s.materialRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load materials snapshot: %w", err)
	}

	summary := costing.TotalBOMCost(skuCode, lines, domain.MaterialsByCode(materials))
	return &summary, nil
}

// History returns the most recent costing runs for a SKU. A non-positive
// limit falls back to the configured run limit.
func (s *CostingService) History(ctx context.Context, skuCode string, limit int) ([]domain.CostingRun, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.runRepo.GetBySKU(ctx, skuCode, limit)
}

// InvalidateSKUs drops cached rollups after a material or BOM write.
func (s *CostingService) InvalidateSKUs(ctx context.Context, skuCodes ...string) {
	if err := s.costCache.Invalidate(ctx, skuCodes...); err != nil {
		log.Warn().Err(err).Strs("sku_codes", skuCodes).Msg("costing cache invalidation failed")
	}
}
