package service

import (
	"context"
	"sync"

	"github.com/stitchworks/stitcherp/internal/domain"
)

// In-memory repositories for service tests.

type fakePORepo struct {
	mu     sync.Mutex
	orders map[string]domain.PurchaseOrder
	items  map[int64]domain.PurchaseOrderItem
	nextID int64

	// createConflicts forces the next N Create calls to report a taken
	// order number.
	createConflicts int
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{
		orders: make(map[string]domain.PurchaseOrder),
		items:  make(map[int64]domain.PurchaseOrderItem),
		nextID: 1,
	}
}

func (r *fakePORepo) GetAll(ctx context.Context) ([]domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]domain.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		orders = append(orders, po)
	}
	return orders, nil
}

func (r *fakePORepo) GetByNumber(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	po.Items = r.itemsOf(number)
	return &po, nil
}

func (r *fakePORepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createConflicts > 0 {
		r.createConflicts--
		return domain.ErrAlreadyExists
	}
	if _, ok := r.orders[po.Number]; ok {
		return domain.ErrAlreadyExists
	}
	r.orders[po.Number] = *po
	return nil
}

func (r *fakePORepo) UpdateStatus(ctx context.Context, number string, status domain.POStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	po, ok := r.orders[number]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	r.orders[number] = po
	return nil
}

func (r *fakePORepo) DeleteWithItems(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[number]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, number)
	for id, item := range r.items {
		if item.PONumber == number {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakePORepo) GetAllItems(ctx context.Context) ([]domain.PurchaseOrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]domain.PurchaseOrderItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *fakePORepo) GetItems(ctx context.Context, number string) ([]domain.PurchaseOrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemsOf(number), nil
}

func (r *fakePORepo) itemsOf(number string) []domain.PurchaseOrderItem {
	items := make([]domain.PurchaseOrderItem, 0)
	for _, item := range r.items {
		if item.PONumber == number {
			items = append(items, item)
		}
	}
	return items
}

func (r *fakePORepo) AddItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *fakePORepo) RemoveItem(ctx context.Context, number string, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.PONumber != number {
		return domain.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[int64]domain.Supplier
}

func (r *fakeSupplierRepo) GetAll(ctx context.Context) ([]domain.Supplier, error) {
	out := make([]domain.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSupplierRepo) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSupplierRepo) Upsert(ctx context.Context, supplier *domain.Supplier) error {
	r.suppliers[supplier.ID] = *supplier
	return nil
}

type fakeMaterialRepo struct {
	materials map[string]domain.Material
}

func (r *fakeMaterialRepo) GetAll(ctx context.Context) ([]domain.Material, error) {
	out := make([]domain.Material, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMaterialRepo) GetByCode(ctx context.Context, code string) (*domain.Material, error) {
	m, ok := r.materials[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMaterialRepo) Upsert(ctx context.Context, material *domain.Material) error {
	r.materials[material.Code] = *material
	return nil
}

func (r *fakeMaterialRepo) Delete(ctx context.Context, code string) error {
	delete(r.materials, code)
	return nil
}

type fakeSKURepo struct {
	skus map[string]domain.SKU
}

func (r *fakeSKURepo) GetByCode(ctx context.Context, code string) (*domain.SKU, error) {
	s, ok := r.skus[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSKURepo) GetByStyle(ctx context.Context, styleCode string) ([]domain.SKU, error) {
	out := make([]domain.SKU, 0)
	for _, s := range r.skus {
		if s.StyleCode == styleCode {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSKURepo) Upsert(ctx context.Context, sku *domain.SKU) error {
	r.skus[sku.Code] = *sku
	return nil
}

type fakeBOMRepo struct {
	lines []domain.BOMLine
}

func (r *fakeBOMRepo) GetBySKU(ctx context.Context, skuCode string) ([]domain.BOMLine, error) {
	out := make([]domain.BOMLine, 0)
	for _, l := range r.lines {
		if l.SKUCode == skuCode {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeBOMRepo) GetByStyle(ctx context.Context, styleCode string) ([]domain.BOMLine, error) {
	out := make([]domain.BOMLine, 0)
	for _, l := range r.lines {
		if l.StyleCode == styleCode {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeBOMRepo) Insert(ctx context.Context, line *domain.BOMLine) error {
	line.ID = int64(len(r.lines) + 1)
	r.lines = append(r.lines, *line)
	return nil
}

func (r *fakeBOMRepo) Delete(ctx context.Context, id int64) error {
	for i, l := range r.lines {
		if l.ID == id {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeInventoryRepo struct {
	items map[string]domain.InventoryItem
}

func (r *fakeInventoryRepo) GetAll(ctx context.Context) ([]domain.InventoryItem, error) {
	out := make([]domain.InventoryItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeInventoryRepo) GetByMaterialCode(ctx context.Context, code string) (*domain.InventoryItem, error) {
	it, ok := r.items[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *fakeInventoryRepo) Upsert(ctx context.Context, item *domain.InventoryItem) error {
	r.items[item.MaterialCode] = *item
	return nil
}

type fakeWORepo struct {
	orders map[string]domain.WorkOrder
}

func (r *fakeWORepo) GetAll(ctx context.Context) ([]domain.WorkOrder, error) {
	out := make([]domain.WorkOrder, 0, len(r.orders))
	for _, wo := range r.orders {
		out = append(out, wo)
	}
	return out, nil
}

func (r *fakeWORepo) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	wo, ok := r.orders[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &wo, nil
}

func (r *fakeWORepo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	r.orders[wo.Number] = *wo
	return nil
}

func (r *fakeWORepo) UpdateStatus(ctx context.Context, number string, status domain.WOStatus) error {
	wo, ok := r.orders[number]
	if !ok {
		return domain.ErrNotFound
	}
	wo.Status = status
	r.orders[number] = wo
	return nil
}

type fakeCostingRunRepo struct {
	runs []domain.CostingRun
}

func (r *fakeCostingRunRepo) Create(ctx context.Context, run *domain.CostingRun) error {
	r.runs = append(r.runs, *run)
	return nil
}

func (r *fakeCostingRunRepo) GetBySKU(ctx context.Context, skuCode string, limit int) ([]domain.CostingRun, error) {
	out := make([]domain.CostingRun, 0)
	for _, run := range r.runs {
		if run.SKUCode == skuCode {
			out = append(out, run)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
