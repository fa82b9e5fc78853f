package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stitchworks/stitcherp/internal/domain"
)

func newPurchasingFixture() (*PurchasingService, *fakePORepo) {
	poRepo := newFakePORepo()
	suppliers := &fakeSupplierRepo{suppliers: map[int64]domain.Supplier{
		1: {ID: 1, Name: "Apex Trims"},
	}}
	materials := &fakeMaterialRepo{materials: map[string]domain.Material{
		"FAB-001": {Code: "FAB-001", Description: "Jersey knit", Unit: "m"},
		"BTN-014": {Code: "BTN-014", Description: "Shell button", Unit: "pcs"},
	}}
	return NewPurchasingService(poRepo, suppliers, materials), poRepo
}

func TestCreateDraftRequiresKnownSupplier(t *testing.T) {
	svc, _ := newPurchasingFixture()

	if _, err := svc.CreateDraft(context.Background(), CreatePORequest{SupplierID: 99}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown supplier, got %v", err)
	}

	po, err := svc.CreateDraft(context.Background(), CreatePORequest{SupplierID: 1})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if po.Status != domain.POStatusDraft {
		t.Fatalf("new order status = %s, want draft", po.Status)
	}
	if po.Number == "" {
		t.Fatal("new order has no number")
	}
}

func TestCreateDraftRetriesTakenNumbers(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.createConflicts = 2

	po, err := svc.CreateDraft(context.Background(), CreatePORequest{SupplierID: 1})
	if err != nil {
		t.Fatalf("CreateDraft should retry past taken numbers: %v", err)
	}
	if po.Number == "" {
		t.Fatal("order created without a number")
	}
	if _, err := svc.Get(context.Background(), po.Number); err != nil {
		t.Fatalf("created order not retrievable: %v", err)
	}

	// When every attempt collides, the allocation error surfaces.
	repo.createConflicts = poNumberAttempts
	if _, err := svc.CreateDraft(context.Background(), CreatePORequest{SupplierID: 1}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists after exhausting retries, got %v", err)
	}
}

func TestAddItemOnlyWhileDraft(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})

	item, err := svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "FAB-001",
		Quantity:     decimal.NewFromInt(10),
		UnitCost:     decimal.NewFromFloat(4.5),
	})
	if err != nil {
		t.Fatalf("AddItem on draft: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("added item has no id")
	}

	repo.UpdateStatus(context.Background(), "PO-1", domain.POStatusOrdered)

	_, err = svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "BTN-014",
		Quantity:     decimal.NewFromInt(100),
		UnitCost:     decimal.NewFromFloat(0.2),
	})
	if !errors.Is(err, domain.ErrMutationNotAllowed) {
		t.Fatalf("expected ErrMutationNotAllowed on ordered PO, got %v", err)
	}
	if err := svc.RemoveItem(context.Background(), "PO-1", item.ID); !errors.Is(err, domain.ErrMutationNotAllowed) {
		t.Fatalf("expected ErrMutationNotAllowed on item removal, got %v", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})

	cases := []struct {
		name string
		req  AddItemRequest
	}{
		{"zero quantity", AddItemRequest{MaterialCode: "FAB-001", Quantity: decimal.Zero, UnitCost: decimal.NewFromInt(1)}},
		{"negative quantity", AddItemRequest{MaterialCode: "FAB-001", Quantity: decimal.NewFromInt(-2), UnitCost: decimal.NewFromInt(1)}},
		{"negative unit cost", AddItemRequest{MaterialCode: "FAB-001", Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(-1)}},
		{"unknown material", AddItemRequest{MaterialCode: "NOPE", Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddItem(context.Background(), "PO-1", tc.req); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestTransitionTableEnforced(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})
	svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "FAB-001",
		Quantity:     decimal.NewFromInt(5),
		UnitCost:     decimal.NewFromInt(2),
	})

	if _, err := svc.Transition(context.Background(), "PO-1", domain.POStatusShipped); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("draft->shipped should be rejected, got %v", err)
	}

	for _, to := range []domain.POStatus{domain.POStatusOrdered, domain.POStatusShipped, domain.POStatusReceived} {
		po, err := svc.Transition(context.Background(), "PO-1", to)
		if err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
		if po.Status != to {
			t.Fatalf("status = %s, want %s", po.Status, to)
		}
	}

	if _, err := svc.Transition(context.Background(), "PO-1", domain.POStatusCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("received is terminal, got %v", err)
	}
}

func TestEmptyDraftCannotBePromoted(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})

	if _, err := svc.Transition(context.Background(), "PO-1", domain.POStatusOrdered); !errors.Is(err, domain.ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}

	// Cancelling an empty draft is still allowed.
	po, err := svc.Transition(context.Background(), "PO-1", domain.POStatusCancelled)
	if err != nil {
		t.Fatalf("cancel empty draft: %v", err)
	}
	if po.Status != domain.POStatusCancelled {
		t.Fatalf("status = %s, want cancelled", po.Status)
	}
}

func TestDeleteRemovesOrderAndItems(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})
	svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "FAB-001",
		Quantity:     decimal.NewFromInt(5),
		UnitCost:     decimal.NewFromInt(2),
	})

	if err := svc.Delete(context.Background(), "PO-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "PO-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("order should be gone, got %v", err)
	}
	items, _ := repo.GetAllItems(context.Background())
	if len(items) != 0 {
		t.Fatalf("items left after delete: %d", len(items))
	}

	if err := svc.Delete(context.Background(), "PO-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deleting missing order should fail, got %v", err)
	}
}

func TestTotalsIncludeItemlessOrders(t *testing.T) {
	svc, repo := newPurchasingFixture()
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-1", SupplierID: 1, Status: domain.POStatusDraft})
	repo.Create(context.Background(), &domain.PurchaseOrder{Number: "PO-2", SupplierID: 1, Status: domain.POStatusDraft})

	svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "FAB-001",
		Quantity:     decimal.NewFromInt(3),
		UnitCost:     decimal.NewFromInt(10),
	})
	svc.AddItem(context.Background(), "PO-1", AddItemRequest{
		MaterialCode: "BTN-014",
		Quantity:     decimal.NewFromInt(2),
		UnitCost:     decimal.NewFromInt(25),
	})

	totals, err := svc.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got := totals["PO-1"]; !got.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("PO-1 total = %s, want 80", got)
	}
	if got := totals["PO-2"]; !got.Equal(decimal.Zero) {
		t.Fatalf("PO-2 total = %s, want 0", got)
	}

	one, err := svc.TotalFor(context.Background(), "PO-1")
	if err != nil {
		t.Fatalf("TotalFor: %v", err)
	}
	if !one.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("TotalFor = %s, want 80", one)
	}
}
