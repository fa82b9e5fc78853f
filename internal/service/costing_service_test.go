package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/costing"
	"github.com/stitchworks/stitcherp/internal/domain"
)

type memCostCache struct {
	entries map[string]*costing.BOMCostSummary
	hits    int
}

func newMemCostCache() *memCostCache {
	return &memCostCache{entries: map[string]*costing.BOMCostSummary{}}
}

func (c *memCostCache) Get(ctx context.Context, skuCode string) (*costing.BOMCostSummary, bool, error) {
	s, ok := c.entries[skuCode]
	if ok {
		c.hits++
	}
	return s, ok, nil
}

func (c *memCostCache) Set(ctx context.Context, skuCode string, summary *costing.BOMCostSummary) error {
	c.entries[skuCode] = summary
	return nil
}

func (c *memCostCache) Invalidate(ctx context.Context, skuCodes ...string) error {
	for _, code := range skuCodes {
		delete(c.entries, code)
	}
	return nil
}

func newCostingFixture() (*CostingService, *fakeCostingRunRepo, *memCostCache) {
	skuRepo := &fakeSKURepo{skus: map[string]domain.SKU{
		"TSHIRT-M": {Code: "TSHIRT-M", StyleCode: "TSHIRT", Size: "M"},
	}}
	bomRepo := &fakeBOMRepo{lines: []domain.BOMLine{
		{ID: 1, SKUCode: "TSHIRT-M", MaterialCode: "FAB-001", Consumption: decimal.NewFromFloat(2.5), WastagePct: decimal.NewFromInt(10)},
	}}
	materials := &fakeMaterialRepo{materials: map[string]domain.Material{
		"FAB-001": {Code: "FAB-001", Description: "Jersey knit", Unit: "m", CostPerUnit: decimal.NewFromInt(4)},
	}}
	runRepo := &fakeCostingRunRepo{}
	cacheImpl := newMemCostCache()
	return NewCostingService(skuRepo, bomRepo, materials, runRepo, cacheImpl, 0), runRepo, cacheImpl
}

func TestCostSKURecordsRunAndCaches(t *testing.T) {
	svc, runRepo, cacheImpl := newCostingFixture()

	summary, err := svc.CostSKU(context.Background(), "TSHIRT-M")
	if err != nil {
		t.Fatalf("CostSKU: %v", err)
	}
	if !summary.TotalCost.Equal(decimal.NewFromInt(11)) {
		t.Fatalf("total = %s, want 11", summary.TotalCost)
	}
	if len(runRepo.runs) != 1 {
		t.Fatalf("runs recorded = %d, want 1", len(runRepo.runs))
	}
	if runRepo.runs[0].ID == "" {
		t.Fatal("costing run has no id")
	}

	// Second read is served from cache; no new run is recorded.
	again, err := svc.CostSKU(context.Background(), "TSHIRT-M")
	if err != nil {
		t.Fatalf("cached CostSKU: %v", err)
	}
	if !again.TotalCost.Equal(summary.TotalCost) {
		t.Fatalf("cached total = %s, want %s", again.TotalCost, summary.TotalCost)
	}
	if cacheImpl.hits != 1 {
		t.Fatalf("cache hits = %d, want 1", cacheImpl.hits)
	}
	if len(runRepo.runs) != 1 {
		t.Fatalf("runs after cache hit = %d, want 1", len(runRepo.runs))
	}
}

func TestCostSKUUnknownSKU(t *testing.T) {
	svc, _, _ := newCostingFixture()

	if _, err := svc.CostSKU(context.Background(), "NOPE"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidateSKUsDropsCache(t *testing.T) {
	svc, runRepo, _ := newCostingFixture()

	if _, err := svc.CostSKU(context.Background(), "TSHIRT-M"); err != nil {
		t.Fatalf("CostSKU: %v", err)
	}
	svc.InvalidateSKUs(context.Background(), "TSHIRT-M")

	if _, err := svc.CostSKU(context.Background(), "TSHIRT-M"); err != nil {
		t.Fatalf("CostSKU after invalidate: %v", err)
	}
	if len(runRepo.runs) != 2 {
		t.Fatalf("runs = %d, want 2 after invalidation", len(runRepo.runs))
	}
}

func TestHistoryDefaultsLimit(t *testing.T) {
	svc, runRepo, _ := newCostingFixture()
	runRepo.runs = []domain.CostingRun{
		{ID: "a", SKUCode: "TSHIRT-M"},
		{ID: "b", SKUCode: "OTHER"},
		{ID: "c", SKUCode: "TSHIRT-M"},
	}

	runs, err := svc.History(context.Background(), "TSHIRT-M", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("history entries = %d, want 2", len(runs))
	}
}

func TestHistoryUsesConfiguredRunLimit(t *testing.T) {
	runRepo := &fakeCostingRunRepo{runs: []domain.CostingRun{
		{ID: "a", SKUCode: "TSHIRT-M"},
		{ID: "b", SKUCode: "TSHIRT-M"},
		{ID: "c", SKUCode: "TSHIRT-M"},
	}}
	svc := NewCostingService(
		&fakeSKURepo{skus: map[string]domain.SKU{}},
		&fakeBOMRepo{},
		&fakeMaterialRepo{materials: map[string]domain.Material{}},
		runRepo, newMemCostCache(), 2)

	runs, err := svc.History(context.Background(), "TSHIRT-M", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("history entries = %d, want configured limit 2", len(runs))
	}

	// An explicit limit still overrides the configured one.
	runs, err = svc.History(context.Background(), "TSHIRT-M", 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("history entries = %d, want 1", len(runs))
	}
}
