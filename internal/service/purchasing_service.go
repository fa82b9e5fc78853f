// internal/service/purchasing_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/costing"
	"github.com/stitchworks/stitcherp/internal/domain"
	"github.com/stitchworks/stitcherp/internal/repository"
)

// PurchasingService owns the purchase order workflow. All mutability and
// transition rules live here so the API and any UI read one source of truth.
type PurchasingService struct {
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	materialRepo repository.MaterialRepository
}

func NewPurchasingService(
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	materialRepo repository.MaterialRepository,
) *PurchasingService {
	return &PurchasingService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		materialRepo: materialRepo,
	}
}

type CreatePORequest struct {
	SupplierID   int64      `json:"supplier_id" binding:"required"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Notes        string     `json:"notes"`
}

// poNumberAttempts bounds how often a colliding generated number is retried.
const poNumberAttempts = 5

func newPONumber(now time.Time) string {
	return fmt.Sprintf("PO-%s%04d", now.Format("20060102"), rand.Intn(10000))
}

// CreateDraft opens a new draft purchase order for a supplier. Items are
// added separately while the order stays in draft. Numbers are generated
// server-side; a collision with an existing number is retried with a fresh
// suffix instead of surfacing the key violation.
func (s *PurchasingService) CreateDraft(ctx context.Context, req CreatePORequest) (*domain.PurchaseOrder, error) {
	if _, err := s.supplierRepo.GetByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("supplier %d: %w", req.SupplierID, err)
	}

	now := time.Now()
	po := &domain.PurchaseOrder{
		SupplierID:   req.SupplierID,
		OrderDate:    &now,
		DeliveryDate: req.DeliveryDate,
		Status:       domain.POStatusDraft,
		Notes:        req.Notes,
	}

	for attempt := 0; attempt < poNumberAttempts; attempt++ {
		po.Number = newPONumber(now)

		err := s.poRepo.Create(ctx, po)
		if err == nil {
			log.Info().Str("po_number", po.Number).Int64("supplier_id", po.SupplierID).Msg("draft purchase order created")
			return po, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("failed to create purchase order: %w", err)
		}

		log.Warn().Str("po_number", po.Number).Msg("purchase order number taken, retrying with a new suffix")
	}

	return nil, fmt.Errorf("failed to allocate a purchase order number after %d attempts: %w",
		poNumberAttempts, domain.ErrAlreadyExists)
}

func (s *PurchasingService) Get(ctx context.Context, number string) (*domain.PurchaseOrder, error) {
	return s.poRepo.GetByNumber(ctx, number)
}

func (s *PurchasingService) List(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return s.poRepo.GetAll(ctx)
}

type AddItemRequest struct {
	MaterialCode string          `json:"material_code" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// AddItem appends a line item to a draft purchase order. Items on orders
// past draft are immutable; the attempt is rejected before anything is
// written.
func (s *PurchasingService) AddItem(ctx context.Context, number string, req AddItemRequest) (*domain.PurchaseOrderItem, error) {
	po, err := s.poRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("purchase order %s: %w", number, err)
	}
	if !po.Status.Mutable() {
		return nil, fmt.Errorf("purchase order %s is %s: %w", number, po.Status.Label(), domain.ErrMutationNotAllowed)
	}

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: item quantity must be > 0, got %s", costing.ErrInvalidInput, req.Quantity)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: item unit cost must be >= 0, got %s", costing.ErrInvalidInput, req.UnitCost)
	}
	if _, err := s.materialRepo.GetByCode(ctx, req.MaterialCode); err != nil {
		return nil, fmt.Errorf("material %s: %w", req.MaterialCode, err)
	}

	item := &domain.PurchaseOrderItem{
		PONumber:     number,
		MaterialCode: req.MaterialCode,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
	}
	if err := s.poRepo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item to %s: %w", number, err)
	}

	return item, nil
}

// RemoveItem deletes a line item from a draft purchase order.
func (s *PurchasingService) RemoveItem(ctx context.Context, number string, itemID int64) error {
	po, err := s.poRepo.GetByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("purchase order %s: %w", number, err)
	}
	if !po.Status.Mutable() {
		return fmt.Errorf("purchase order %s is %s: %w", number, po.Status.Label(), domain.ErrMutationNotAllowed)
	}

	return s.poRepo.RemoveItem(ctx, number, itemID)
}

// Transition moves a purchase order to a new status. Promoting an empty
// draft is rejected; any transition the table forbids is rejected.
func (s *PurchasingService) Transition(ctx context.Context, number string, to domain.POStatus) (*domain.PurchaseOrder, error) {
	po, err := s.poRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("purchase order %s: %w", number, err)
	}

	if !domain.CanTransition(po.Status, to) {
		return nil, fmt.Errorf("purchase order %s cannot move from %s to %s: %w",
			number, po.Status.Label(), to.Label(), domain.ErrInvalidTransition)
	}
	if po.Status == domain.POStatusDraft && to != domain.POStatusCancelled && len(po.Items) == 0 {
		return nil, fmt.Errorf("purchase order %s: %w", number, domain.ErrEmptyDraft)
	}

	if err := s.poRepo.UpdateStatus(ctx, number, to); err != nil {
		return nil, err
	}
	po.Status = to

	log.Info().Str("po_number", number).Str("status", string(to)).Msg("purchase order status changed")
	return po, nil
}

// Delete removes a purchase order together with its items. The repository
// performs both deletes in one transaction.
func (s *PurchasingService) Delete(ctx context.Context, number string) error {
	if _, err := s.poRepo.GetByNumber(ctx, number); err != nil {
		return fmt.Errorf("purchase order %s: %w", number, err)
	}

	return s.poRepo.DeleteWithItems(ctx, number)
}

// Totals returns the value of every purchase order, grouped by number.
// Orders without items are reported as zero.
func (s *PurchasingService) Totals(ctx context.Context) (map[string]decimal.Decimal, error) {
	orders, err := s.poRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.poRepo.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	totals := costing.POTotals(items)
	for _, po := range orders {
		if _, ok := totals[po.Number]; !ok {
			totals[po.Number] = decimal.Zero
		}
	}

	return totals, nil
}

// TotalFor returns the value of one purchase order.
func (s *PurchasingService) TotalFor(ctx context.Context, number string) (decimal.Decimal, error) {
	items, err := s.poRepo.GetItems(ctx, number)
	if err != nil {
		return decimal.Zero, err
	}

	return costing.POTotal(items), nil
}
